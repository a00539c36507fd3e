// Package game composes the round pipeline (select, resolve, mask,
// sign) and scores submitted guesses against the token's answer.
package game

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/mask"
	"github.com/CodeAndHammer/kantoludo/internal/models"
	"github.com/CodeAndHammer/kantoludo/internal/token"
)

var logger = log.With().Str("component", "game").Logger()

// LyricsResolver yields one track with its normalized lyrics. Satisfied
// by *lyrics.Resolver.
type LyricsResolver interface {
	Resolve(ctx context.Context) (models.Track, string, error)
}

// Builder orchestrates single rounds and bounded round queues.
type Builder struct {
	resolver  LyricsResolver
	codec     *token.Codec
	maskRatio float64
}

func NewBuilder(resolver LyricsResolver, codec *token.Codec, maskRatio float64) *Builder {
	if maskRatio <= 0 || maskRatio > 1 {
		maskRatio = constants.DefaultMaskRatio
	}
	return &Builder{resolver: resolver, codec: codec, maskRatio: maskRatio}
}

var concreteModes = []string{constants.ModeArtist, constants.ModeTrack, constants.ModeLyrics}

// resolveMode turns shuffle (or empty) into a concrete round type. The
// draw happens once per round, so a shuffled queue mixes types.
func resolveMode(mode string) string {
	if mode == "" || mode == constants.ModeShuffle {
		return concreteModes[rand.IntN(len(concreteModes))]
	}
	return mode
}

func resolveDifficulty(difficulty string) string {
	if difficulty == "" || difficulty == constants.DifficultyRandom {
		if rand.IntN(2) == 0 {
			return constants.DifficultyEasy
		}
		return constants.DifficultyHard
	}
	return difficulty
}

// BuildRound produces one puzzle. The only caller-visible failure is
// the resolver exhausting its budget (lyrics.ErrLyricsUnavailable).
func (b *Builder) BuildRound(ctx context.Context, mode, difficulty string) (models.Round, error) {
	roundType := resolveMode(mode)
	diff := resolveDifficulty(difficulty)

	track, text, err := b.resolver.Resolve(ctx)
	if err != nil {
		return models.Round{}, err
	}

	answer := models.RoundAnswer{
		Artist:     track.Artist,
		Title:      track.Title,
		RoundType:  roundType,
		Difficulty: diff,
	}

	var masked string
	meta := []models.BlankMetadata{}
	switch roundType {
	case constants.ModeLyrics:
		// Truncate the source before masking so no blank straddles the cut.
		source := mask.TruncateAtWord(text, constants.DisplayMaxChars)
		ratio := constants.LyricsBlankRatioEasy
		if diff == constants.DifficultyHard {
			ratio = constants.LyricsBlankRatioHard
		}
		var answers []string
		masked, meta, answers = mask.ExtractBlanks(source, ratio)
		answer.LyricsAnswers = answers
	default:
		masked = text
		if diff == constants.DifficultyHard {
			masked = mask.Words(text, b.maskRatio)
		}
		masked = mask.Truncate(masked, constants.DisplayMaxChars)
	}

	gameToken, err := b.codec.Encode(answer)
	if err != nil {
		return models.Round{}, err
	}

	hintLength := len(track.Artist)
	if roundType == constants.ModeTrack {
		hintLength = len(track.Title)
	}

	logger.Info().
		Str("round_type", roundType).
		Str("difficulty", diff).
		Int("blanks", len(meta)).
		Msg("Round built")

	return models.Round{
		GameToken:     gameToken,
		MaskedLyrics:  masked,
		HintLength:    hintLength,
		RoundType:     roundType,
		Difficulty:    diff,
		BlanksMeta:    meta,
		AlbumCoverURL: track.AlbumCover,
	}, nil
}

// BuildQueue builds up to count rounds within count*QueueAttemptFactor
// attempts, skipping failed builds. A queue shorter than requested is a
// legitimate outcome when upstreams stay unavailable.
func (b *Builder) BuildQueue(ctx context.Context, count int, mode, difficulty string) []models.Round {
	rounds := make([]models.Round, 0, count)
	maxAttempts := count * constants.QueueAttemptFactor

	for attempt := 1; attempt <= maxAttempts && len(rounds) < count; attempt++ {
		round, err := b.BuildRound(ctx, mode, difficulty)
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Int("built", len(rounds)).Msg("Queue round build failed, skipping")
			continue
		}
		rounds = append(rounds, round)
	}

	if len(rounds) < count {
		logger.Warn().Int("requested", count).Int("built", len(rounds)).Msg("Queue shorter than requested")
	}
	return rounds
}
