package songs

import (
	"context"
	"math/rand/v2"
	"net/http"

	"github.com/CodeAndHammer/kantoludo/internal/fetch"
	"github.com/CodeAndHammer/kantoludo/internal/models"
)

const itunesTopSongsURL = "https://itunes.apple.com/us/rss/topsongs/limit=100/json"

// ITunes fetches candidates from the iTunes top-songs RSS feed, the
// alternate catalog next to Deezer.
type ITunes struct {
	url    string
	client *http.Client
}

func NewITunes(client *http.Client) *ITunes {
	return &ITunes{url: itunesTopSongsURL, client: client}
}

type itunesLabel struct {
	Label string `json:"label"`
}

type itunesEntry struct {
	Name   itunesLabel   `json:"im:name"`
	Artist itunesLabel   `json:"im:artist"`
	Images []itunesLabel `json:"im:image"`
}

type itunesFeed struct {
	Feed struct {
		Entry []itunesEntry `json:"entry"`
	} `json:"feed"`
}

func (i *ITunes) topSong(ctx context.Context) (models.Track, bool) {
	var feed itunesFeed
	if err := fetch.JSON(ctx, i.client, i.url, &feed); err != nil {
		return models.Track{}, false
	}
	entries := feed.Feed.Entry
	if len(entries) == 0 {
		return models.Track{}, false
	}
	sel := entries[rand.IntN(len(entries))]
	track := models.Track{Artist: sel.Artist.Label, Title: sel.Name.Label}
	if len(sel.Images) > 0 {
		// The feed lists artwork smallest-first.
		track.AlbumCover = sel.Images[len(sel.Images)-1].Label
	}
	if track.Zero() {
		return models.Track{}, false
	}
	logger.Debug().Str("artist", track.Artist).Str("title", track.Title).Msg("iTunes candidate picked")
	return track, true
}
