package songs

import (
	"context"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/models"
	"github.com/CodeAndHammer/kantoludo/internal/recency"
)

// Selector draws a provider by weight, skips tracks still inside the
// recency window, and falls through to the static pool once the attempt
// budget runs out. Select never fails.
type Selector struct {
	providers   []WeightedProvider
	totalWeight int
	fallback    []models.Track
	recent      *recency.Cache
}

func NewSelector(providers []WeightedProvider, fallback []models.Track, recent *recency.Cache) *Selector {
	total := lo.SumBy(providers, func(p WeightedProvider) int { return p.Weight })
	return &Selector{
		providers:   providers,
		totalWeight: total,
		fallback:    fallback,
		recent:      recent,
	}
}

// Select returns one fresh track, marking it recent. An empty provider
// result and a recent track both consume an attempt.
func (s *Selector) Select(ctx context.Context) models.Track {
	for attempt := 1; attempt <= constants.SelectMaxAttempts; attempt++ {
		provider := s.pickProvider()
		if provider == nil {
			break
		}
		logger.Info().Str("provider", provider.Name()).Int("attempt", attempt).Msg("Song provider selected")

		track, ok := provider.Fetch(ctx)
		if !ok {
			continue
		}
		if !s.recent.MarkIfFresh(track.Key()) {
			logger.Info().Str("artist", track.Artist).Str("title", track.Title).Msg("Track skipped (recent)")
			continue
		}
		logger.Info().Str("artist", track.Artist).Str("title", track.Title).Msg("Track selected")
		return track
	}
	return s.selectFallback()
}

// selectFallback draws uniformly from the static pool, preferring songs
// outside the recency window; when everything is recent that
// restriction is lifted rather than failing.
func (s *Selector) selectFallback() models.Track {
	pool := lo.Filter(s.fallback, func(t models.Track, _ int) bool {
		return !s.recent.Contains(t.Key())
	})
	if len(pool) == 0 {
		pool = s.fallback
	}
	track := pool[rand.IntN(len(pool))]
	s.recent.Mark(track.Key())
	logger.Info().Str("artist", track.Artist).Str("title", track.Title).Msg("Fallback track selected")
	return track
}

func (s *Selector) pickProvider() Provider {
	if s.totalWeight <= 0 {
		return nil
	}
	n := rand.IntN(s.totalWeight)
	for _, wp := range s.providers {
		n -= wp.Weight
		if n < 0 {
			return wp.Provider
		}
	}
	return s.providers[len(s.providers)-1].Provider
}
