package songs

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/samber/lo"

	"github.com/CodeAndHammer/kantoludo/internal/fetch"
	"github.com/CodeAndHammer/kantoludo/internal/models"
)

const deezerBaseURL = "https://api.deezer.com"

// Deezer fetches candidate tracks from the public Deezer API through
// several entry points: global chart, radios, genre charts, editorial
// selections and artist top tracks.
type Deezer struct {
	base   string
	client *http.Client
}

func NewDeezer(client *http.Client) *Deezer {
	return &Deezer{base: deezerBaseURL, client: client}
}

type deezerTrack struct {
	Title  string `json:"title"`
	Artist struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
}

type deezerTrackList struct {
	Data []deezerTrack `json:"data"`
}

type deezerEntry struct {
	ID int64 `json:"id"`
}

type deezerEntryList struct {
	Data []deezerEntry `json:"data"`
}

type deezerEditorialCharts struct {
	Tracks deezerTrackList `json:"tracks"`
}

func (d *Deezer) pickTrack(tracks []deezerTrack) (models.Track, bool) {
	if len(tracks) == 0 {
		return models.Track{}, false
	}
	sel := tracks[rand.IntN(len(tracks))]
	track := models.Track{
		Artist:     sel.Artist.Name,
		Title:      sel.Title,
		AlbumCover: sel.Album.CoverMedium,
	}
	if track.Zero() {
		return models.Track{}, false
	}
	logger.Debug().Str("artist", track.Artist).Str("title", track.Title).Msg("Deezer candidate picked")
	return track, true
}

// pickEntry draws one id from a catalog listing, skipping entries
// without a usable id.
func pickEntry(entries []deezerEntry) (int64, bool) {
	valid := lo.Filter(entries, func(e deezerEntry, _ int) bool { return e.ID != 0 })
	if len(valid) == 0 {
		return 0, false
	}
	return valid[rand.IntN(len(valid))].ID, true
}

func (d *Deezer) chart(ctx context.Context) (models.Track, bool) {
	var list deezerTrackList
	if err := fetch.JSON(ctx, d.client, d.base+"/chart/0/tracks", &list); err != nil {
		return models.Track{}, false
	}
	return d.pickTrack(list.Data)
}

func (d *Deezer) radio(ctx context.Context) (models.Track, bool) {
	var radios deezerEntryList
	if err := fetch.JSON(ctx, d.client, d.base+"/radio", &radios); err != nil {
		return models.Track{}, false
	}
	id, ok := pickEntry(radios.Data)
	if !ok {
		return models.Track{}, false
	}
	var list deezerTrackList
	if err := fetch.JSON(ctx, d.client, fmt.Sprintf("%s/radio/%d/tracks", d.base, id), &list); err != nil {
		return models.Track{}, false
	}
	return d.pickTrack(list.Data)
}

func (d *Deezer) genreChart(ctx context.Context) (models.Track, bool) {
	var genres deezerEntryList
	if err := fetch.JSON(ctx, d.client, d.base+"/genre", &genres); err != nil {
		return models.Track{}, false
	}
	id, ok := pickEntry(genres.Data)
	if !ok {
		return models.Track{}, false
	}
	var list deezerTrackList
	if err := fetch.JSON(ctx, d.client, fmt.Sprintf("%s/chart/%d/tracks", d.base, id), &list); err != nil {
		return models.Track{}, false
	}
	return d.pickTrack(list.Data)
}

func (d *Deezer) editorial(ctx context.Context) (models.Track, bool) {
	var editorials deezerEntryList
	if err := fetch.JSON(ctx, d.client, d.base+"/editorial", &editorials); err != nil {
		return models.Track{}, false
	}
	id, ok := pickEntry(editorials.Data)
	if !ok {
		return models.Track{}, false
	}
	var charts deezerEditorialCharts
	if err := fetch.JSON(ctx, d.client, fmt.Sprintf("%s/editorial/%d/charts", d.base, id), &charts); err != nil {
		return models.Track{}, false
	}
	return d.pickTrack(charts.Tracks.Data)
}

func (d *Deezer) artistTop(ctx context.Context) (models.Track, bool) {
	var artists deezerEntryList
	if err := fetch.JSON(ctx, d.client, d.base+"/chart/0/artists", &artists); err != nil {
		return models.Track{}, false
	}
	id, ok := pickEntry(artists.Data)
	if !ok {
		return models.Track{}, false
	}
	var list deezerTrackList
	if err := fetch.JSON(ctx, d.client, fmt.Sprintf("%s/artist/%d/top?limit=50", d.base, id), &list); err != nil {
		return models.Track{}, false
	}
	return d.pickTrack(list.Data)
}
