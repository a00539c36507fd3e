package songs

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"

	"github.com/CodeAndHammer/kantoludo/internal/models"
)

// defaultSongs keeps the server bootable without a data file. All pairs
// are known to resolve against the lyrics provider.
var defaultSongs = []models.Track{
	{Artist: "Ed Sheeran", Title: "Shape of You"},
	{Artist: "Queen", Title: "Bohemian Rhapsody"},
	{Artist: "Adele", Title: "Hello"},
	{Artist: "Drake", Title: "Hotline Bling"},
	{Artist: "Taylor Swift", Title: "Shake It Off"},
	{Artist: "Eminem", Title: "Lose Yourself"},
	{Artist: "Billie Eilish", Title: "Bad Guy"},
	{Artist: "The Weeknd", Title: "Blinding Lights"},
	{Artist: "Coldplay", Title: "Yellow"},
	{Artist: "Linkin Park", Title: "In the End"},
}

// LoadFallbackSongs reads the static fallback pool from path. A missing
// or unreadable file falls back to the built-in list so the selector
// always has a pool of last resort.
func LoadFallbackSongs(path string) []models.Track {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("Song file not readable, using built-in fallback list")
		return defaultSongs
	}

	var list models.SongList
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("Song file malformed, using built-in fallback list")
		return defaultSongs
	}

	songs := lo.Filter(list.Songs, func(t models.Track, _ int) bool {
		if t.Zero() {
			logger.Warn().Str("artist", t.Artist).Str("title", t.Title).Msg("Skipping song entry with missing fields")
			return false
		}
		return true
	})
	if len(songs) == 0 {
		logger.Warn().Str("path", path).Msg("Song file empty after validation, using built-in fallback list")
		return defaultSongs
	}

	logger.Info().Int("count", len(songs)).Str("path", path).Msg("Loaded fallback songs")
	return songs
}
