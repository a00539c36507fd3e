package songs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeezer(handler http.Handler) (*Deezer, *httptest.Server) {
	srv := httptest.NewServer(handler)
	d := NewDeezer(srv.Client())
	d.base = srv.URL
	return d, srv
}

func TestDeezerChart(t *testing.T) {
	d, srv := newTestDeezer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chart/0/tracks", r.URL.Path)
		w.Write([]byte(`{"data":[{"title":"Yellow","artist":{"name":"Coldplay"},"album":{"cover_medium":"http://img/cover.jpg"}}]}`))
	}))
	defer srv.Close()

	track, ok := d.chart(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Coldplay", track.Artist)
	assert.Equal(t, "Yellow", track.Title)
	assert.Equal(t, "http://img/cover.jpg", track.AlbumCover)
}

func TestDeezerRadioFollowsListing(t *testing.T) {
	d, srv := newTestDeezer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/radio":
			w.Write([]byte(`{"data":[{"id":42}]}`))
		case "/radio/42/tracks":
			w.Write([]byte(`{"data":[{"title":"Hello","artist":{"name":"Adele"}}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	track, ok := d.radio(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Adele", track.Artist)
}

func TestDeezerGenreSkipsInvalidIDs(t *testing.T) {
	d, srv := newTestDeezer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/genre":
			// id 0 is the "all genres" pseudo entry and must be skipped
			w.Write([]byte(`{"data":[{"id":0},{"id":7}]}`))
		case "/chart/7/tracks":
			w.Write([]byte(`{"data":[{"title":"Bad Guy","artist":{"name":"Billie Eilish"}}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	track, ok := d.genreChart(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Billie Eilish", track.Artist)
}

func TestDeezerFailuresCollapseToAbsent(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed payload": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": "not a list"`))
		},
		"empty listing": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		},
		"missing fields": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"title":"","artist":{"name":""}}]}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			d, srv := newTestDeezer(handler)
			defer srv.Close()
			_, ok := d.chart(context.Background())
			assert.False(t, ok)
		})
	}
}

func TestITunesTopSong(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feed":{"entry":[{"im:name":{"label":"Blinding Lights"},"im:artist":{"label":"The Weeknd"},"im:image":[{"label":"small.jpg"},{"label":"large.jpg"}]}]}}`))
	}))
	defer srv.Close()

	it := NewITunes(srv.Client())
	it.url = srv.URL

	track, ok := it.topSong(context.Background())
	require.True(t, ok)
	assert.Equal(t, "The Weeknd", track.Artist)
	assert.Equal(t, "Blinding Lights", track.Title)
	assert.Equal(t, "large.jpg", track.AlbumCover)
}

func TestITunesEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feed":{}}`))
	}))
	defer srv.Close()

	it := NewITunes(srv.Client())
	it.url = srv.URL

	_, ok := it.topSong(context.Background())
	assert.False(t, ok)
}
