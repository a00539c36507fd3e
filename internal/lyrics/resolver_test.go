package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/models"
)

type fixedPicker struct {
	track models.Track
	calls int32
}

func (p *fixedPicker) Select(_ context.Context) models.Track {
	atomic.AddInt32(&p.calls, 1)
	return p.track
}

func newTestResolver(handler http.Handler, track models.Track) (*Resolver, *fixedPicker, *httptest.Server) {
	srv := httptest.NewServer(handler)
	picker := &fixedPicker{track: track}
	r := NewResolver(picker, srv.Client())
	r.base = srv.URL
	return r, picker, srv
}

func TestResolveSuccess(t *testing.T) {
	track := models.Track{Artist: "Adele", Title: "Hello"}
	r, _, srv := newTestResolver(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/Adele/Hello", req.URL.Path)
		w.Write([]byte(`{"lyrics":"Hello, it's me\nI was wondering"}`))
	}), track)
	defer srv.Close()

	got, text, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, track.Artist, got.Artist)
	assert.Equal(t, "Hello, it's me\nI was wondering", text)
}

func TestResolveStripsBoilerplate(t *testing.T) {
	track := models.Track{Artist: "Adele", Title: "Hello"}
	r, _, srv := newTestResolver(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"lyrics":"Paroles de la chanson Hello\n  Hello, it's me  "}`))
	}), track)
	defer srv.Close()

	_, text, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello, it's me", text)
}

func TestResolveRetriesAcrossAttemptsThenSucceeds(t *testing.T) {
	var hits int32
	track := models.Track{Artist: "Queen", Title: "Bohemian Rhapsody"}
	r, _, srv := newTestResolver(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"lyrics":"Is this the real life"}`))
	}), track)
	defer srv.Close()

	_, text, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Is this the real life", text)
	assert.Equal(t, int32(3), hits)
}

func TestResolveExhaustsBudget(t *testing.T) {
	var hits int32
	track := models.Track{Artist: "Nobody", Title: "Nothing"}
	r, picker, srv := newTestResolver(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"lyrics":""}`))
	}), track)
	defer srv.Close()

	_, _, err := r.Resolve(context.Background())
	require.ErrorIs(t, err, ErrLyricsUnavailable)
	assert.Equal(t, int32(constants.MaxCandidates), picker.calls)
	assert.Equal(t, int32(constants.MaxCandidates*constants.MaxAttemptsPerTrack), hits)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "line one", Normalize("Paroles de la chanson Hello\nline one\n", "Hello"))
	assert.Equal(t, "", Normalize("  \n ", "Hello"))
	assert.Equal(t, "untouched", Normalize("untouched", "Hello"))
}
