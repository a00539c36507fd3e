// Package songs selects an unpredictable, non-repeating candidate track
// from several unreliable upstream catalogs, with a static pool as the
// guaranteed last resort.
package songs

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/CodeAndHammer/kantoludo/internal/models"
)

var logger = log.With().Str("component", "songs").Logger()

// Provider produces one candidate track. Any upstream failure (network
// error, bad status, malformed payload, missing fields) collapses to
// ok=false; nothing is surfaced past this boundary.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (models.Track, bool)
}

// WeightedProvider pairs a provider with its share of the traffic.
type WeightedProvider struct {
	Provider Provider
	Weight   int
}

type providerFunc struct {
	name  string
	fetch func(ctx context.Context) (models.Track, bool)
}

func (p providerFunc) Name() string { return p.name }

func (p providerFunc) Fetch(ctx context.Context) (models.Track, bool) { return p.fetch(ctx) }

// DefaultProviders is the production weighted table. Editorial and chart
// catalogs are weighted above radio, which serves narrower playlists.
func DefaultProviders(client *http.Client) []WeightedProvider {
	deezer := NewDeezer(client)
	itunes := NewITunes(client)
	return []WeightedProvider{
		{Provider: providerFunc{"deezer-editorial", deezer.editorial}, Weight: 25},
		{Provider: providerFunc{"deezer-chart", deezer.chart}, Weight: 20},
		{Provider: providerFunc{"deezer-genre", deezer.genreChart}, Weight: 15},
		{Provider: providerFunc{"deezer-radio", deezer.radio}, Weight: 10},
		{Provider: providerFunc{"deezer-artist-top", deezer.artistTop}, Weight: 10},
		{Provider: providerFunc{"itunes-top", itunes.topSong}, Weight: 20},
	}
}
