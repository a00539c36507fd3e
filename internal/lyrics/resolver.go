// Package lyrics resolves normalized lyrics text for a candidate track,
// retrying across both lyrics-provider attempts and fresh candidates.
package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/fetch"
	"github.com/CodeAndHammer/kantoludo/internal/models"
)

const lyricsBaseURL = "https://api.lyrics.ovh/v1"

// The provider sometimes injects a locale-specific header before the
// actual lyrics.
const boilerplatePrefix = "Paroles de la chanson "

// ErrLyricsUnavailable means the full candidate/attempt budget was spent
// without obtaining non-empty lyrics; callers surface it as a 503.
var ErrLyricsUnavailable = errors.New("lyrics provider unavailable")

var logger = log.With().Str("component", "lyrics").Logger()

// TrackPicker yields one candidate track per call. Satisfied by
// *songs.Selector.
type TrackPicker interface {
	Select(ctx context.Context) models.Track
}

// Resolver fetches and normalizes lyrics with two bounded retry loops:
// an outer loop over fresh candidates and an inner loop of lookups for
// the same candidate.
type Resolver struct {
	picker TrackPicker
	client *http.Client
	base   string
}

func NewResolver(picker TrackPicker, client *http.Client) *Resolver {
	return &Resolver{picker: picker, client: client, base: lyricsBaseURL}
}

type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
}

// Resolve returns the first candidate whose lookup produced non-empty
// normalized lyrics. Network errors, bad statuses and empty lyrics are
// all treated the same: try again, then move to the next candidate.
func (r *Resolver) Resolve(ctx context.Context) (models.Track, string, error) {
	for candidate := 1; candidate <= constants.MaxCandidates; candidate++ {
		track := r.picker.Select(ctx)
		logger.Info().
			Str("artist", track.Artist).
			Str("title", track.Title).
			Int("candidate", candidate).
			Msg("Selected track for lyrics lookup")

		lookupURL := fmt.Sprintf("%s/%s/%s", r.base, url.PathEscape(track.Artist), url.PathEscape(track.Title))
		for attempt := 1; attempt <= constants.MaxAttemptsPerTrack; attempt++ {
			var resp lyricsResponse
			if err := fetch.JSON(ctx, r.client, lookupURL, &resp); err != nil {
				logger.Debug().Err(err).Int("attempt", attempt).Msg("Lyrics lookup failed")
				continue
			}
			text := Normalize(resp.Lyrics, track.Title)
			if text == "" {
				logger.Debug().Int("attempt", attempt).Msg("Lyrics empty after cleanup")
				continue
			}
			logger.Info().Str("artist", track.Artist).Str("title", track.Title).Msg("Lyrics found")
			return track, text, nil
		}
	}
	logger.Error().Int("candidates", constants.MaxCandidates).Msg("Lyrics provider failed across all candidates")
	return models.Track{}, "", ErrLyricsUnavailable
}

// Normalize strips the provider's boilerplate header for the given
// title and trims surrounding whitespace.
func Normalize(raw, title string) string {
	cleaned := strings.ReplaceAll(raw, boilerplatePrefix+title, "")
	return strings.TrimSpace(cleaned)
}
