package models

import "strings"

// Track is one candidate song produced by a provider. AlbumCover is a
// best-effort artwork URL and may be empty.
type Track struct {
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	AlbumCover string `json:"album_cover,omitempty"`
}

// Key is the track's identity for recency dedup purposes.
func (t Track) Key() string {
	return strings.ToLower(strings.TrimSpace(t.Artist)) + "::" + strings.ToLower(strings.TrimSpace(t.Title))
}

// Zero reports whether the track is missing either identity field.
func (t Track) Zero() bool {
	return t.Artist == "" || t.Title == ""
}

// SongList is the on-disk shape of the static fallback pool.
type SongList struct {
	Songs []Track `json:"songs"`
}

// BlankMetadata describes one redacted word in lyrics mode: a stable
// placeholder key (BLANK_1, BLANK_2, ... in text order) and the length
// of the hidden word.
type BlankMetadata struct {
	Key    string `json:"key"`
	Length int    `json:"length"`
}

// RoundAnswer is the authoritative server-only round state. It lives
// exclusively inside the signed game token; the server keeps no copy.
type RoundAnswer struct {
	Artist        string   `json:"artist"`
	Title         string   `json:"title"`
	RoundType     string   `json:"round_type"`
	Difficulty    string   `json:"difficulty"`
	LyricsAnswers []string `json:"lyrics_answers,omitempty"`
}

// Round is the client-visible puzzle.
type Round struct {
	GameToken     string          `json:"game_token"`
	MaskedLyrics  string          `json:"masked_lyrics"`
	HintLength    int             `json:"hint_length"`
	RoundType     string          `json:"round_type"`
	Difficulty    string          `json:"difficulty"`
	BlanksMeta    []BlankMetadata `json:"blanks_metadata"`
	AlbumCoverURL string          `json:"album_cover_url,omitempty"`
}

// QueueResponse wraps an ordered batch of rounds.
type QueueResponse struct {
	Rounds []Round `json:"rounds"`
}

// GuessRequest is the submission body. UserGuess is a single string for
// artist/track rounds and an ordered string list for lyrics rounds; the
// evaluator enforces the shape.
type GuessRequest struct {
	GameToken string `json:"game_token" binding:"required"`
	UserGuess any    `json:"user_guess" binding:"required"`
	GiveUp    bool   `json:"give_up"`
}

// GuessResult is the evaluation outcome. CorrectWords is populated for
// lyrics rounds so the client can reveal the full answer.
type GuessResult struct {
	IsCorrect     bool     `json:"is_correct"`
	CorrectArtist string   `json:"correct_artist"`
	CorrectTitle  string   `json:"correct_title"`
	MatchScore    int      `json:"match_score"`
	Message       string   `json:"message"`
	RoundType     string   `json:"round_type"`
	CorrectWords  []string `json:"correct_words"`
}
