package songs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/models"
	"github.com/CodeAndHammer/kantoludo/internal/recency"
)

type stubProvider struct {
	name  string
	track models.Track
	ok    bool
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context) (models.Track, bool) {
	s.calls++
	return s.track, s.ok
}

var testPool = []models.Track{
	{Artist: "Queen", Title: "Bohemian Rhapsody"},
	{Artist: "Adele", Title: "Hello"},
}

func TestSelectReturnsFreshProviderTrack(t *testing.T) {
	p := &stubProvider{name: "stub", track: models.Track{Artist: "Coldplay", Title: "Yellow"}, ok: true}
	sel := NewSelector([]WeightedProvider{{Provider: p, Weight: 1}}, testPool, recency.New(constants.RecentTracksMax))

	track := sel.Select(context.Background())
	assert.Equal(t, "Coldplay", track.Artist)
	assert.Equal(t, 1, p.calls)
}

func TestSelectMarksTrackRecent(t *testing.T) {
	recent := recency.New(constants.RecentTracksMax)
	p := &stubProvider{name: "stub", track: models.Track{Artist: "Coldplay", Title: "Yellow"}, ok: true}
	sel := NewSelector([]WeightedProvider{{Provider: p, Weight: 1}}, testPool, recent)

	sel.Select(context.Background())
	assert.True(t, recent.Contains("coldplay::yellow"))
}

func TestSelectSkipsRecentAndFallsBack(t *testing.T) {
	recent := recency.New(constants.RecentTracksMax)
	recent.Mark("coldplay::yellow")
	p := &stubProvider{name: "stub", track: models.Track{Artist: "Coldplay", Title: "Yellow"}, ok: true}
	sel := NewSelector([]WeightedProvider{{Provider: p, Weight: 1}}, testPool, recent)

	track := sel.Select(context.Background())
	assert.Equal(t, constants.SelectMaxAttempts, p.calls, "recent results still consume the attempt budget")
	assert.Contains(t, []string{"Queen", "Adele"}, track.Artist)
	assert.True(t, recent.Contains(track.Key()))
}

func TestSelectFallbackPrefersNonRecent(t *testing.T) {
	recent := recency.New(constants.RecentTracksMax)
	recent.Mark(testPool[0].Key())
	failing := &stubProvider{name: "down"}
	sel := NewSelector([]WeightedProvider{{Provider: failing, Weight: 1}}, testPool, recent)

	track := sel.Select(context.Background())
	assert.Equal(t, "Adele", track.Artist)
}

func TestSelectFallbackLiftsRestrictionWhenAllRecent(t *testing.T) {
	recent := recency.New(constants.RecentTracksMax)
	for _, song := range testPool {
		recent.Mark(song.Key())
	}
	failing := &stubProvider{name: "down"}
	sel := NewSelector([]WeightedProvider{{Provider: failing, Weight: 1}}, testPool, recent)

	track := sel.Select(context.Background())
	require.False(t, track.Zero(), "selector must never fail")
}

func TestPickProviderRespectsWeights(t *testing.T) {
	heavy := &stubProvider{name: "heavy", track: models.Track{Artist: "A", Title: "B"}, ok: true}
	zero := &stubProvider{name: "zero", track: models.Track{Artist: "C", Title: "D"}, ok: true}
	sel := NewSelector([]WeightedProvider{
		{Provider: heavy, Weight: 10},
		{Provider: zero, Weight: 0},
	}, testPool, recency.New(constants.RecentTracksMax))

	for i := 0; i < 20; i++ {
		assert.Equal(t, "heavy", sel.pickProvider().Name())
	}
}
