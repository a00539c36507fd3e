package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/models"
)

// ErrBadRequest marks shape and consistency errors in a submission:
// wrong guess type for the round's mode, guess-length mismatch, or a
// lyrics round with no stored answers.
var ErrBadRequest = errors.New("bad request")

// Evaluate scores guess against the decoded round answer. Artist and
// track rounds use fuzzy similarity on a single string, lyrics rounds
// exact per-blank comparison on an ordered list.
func Evaluate(answer models.RoundAnswer, guess any, giveUp bool) (models.GuessResult, error) {
	result := models.GuessResult{
		CorrectArtist: answer.Artist,
		CorrectTitle:  answer.Title,
		RoundType:     answer.RoundType,
		CorrectWords:  []string{},
	}

	if giveUp {
		result.Message = constants.MsgGaveUp
		if answer.RoundType == constants.ModeLyrics {
			result.CorrectWords = answer.LyricsAnswers
		}
		return result, nil
	}

	if answer.RoundType == constants.ModeLyrics {
		return evaluateLyrics(answer, guess, result)
	}
	return evaluateFuzzy(answer, guess, result)
}

func evaluateFuzzy(answer models.RoundAnswer, guess any, result models.GuessResult) (models.GuessResult, error) {
	text, ok := guess.(string)
	if !ok {
		return models.GuessResult{}, fmt.Errorf("%w: guess for a %s round must be a single string", ErrBadRequest, answer.RoundType)
	}

	target := answer.Artist
	if answer.RoundType == constants.ModeTrack {
		target = answer.Title
	}

	score := Similarity(text, target)
	result.MatchScore = score
	result.IsCorrect = score > constants.ScoreCorrectThreshold
	switch {
	case result.IsCorrect:
		result.Message = constants.MsgCorrect
	case score > constants.ScoreCloseThreshold:
		result.Message = constants.MsgClose
	default:
		result.Message = constants.MsgWrong
	}
	return result, nil
}

func evaluateLyrics(answer models.RoundAnswer, guess any, result models.GuessResult) (models.GuessResult, error) {
	words, err := toStringSlice(guess)
	if err != nil {
		return models.GuessResult{}, fmt.Errorf("%w: guess for a lyrics round must be a list of strings", ErrBadRequest)
	}
	if len(answer.LyricsAnswers) == 0 {
		return models.GuessResult{}, fmt.Errorf("%w: round carries no stored answers", ErrBadRequest)
	}
	if len(words) != len(answer.LyricsAnswers) {
		return models.GuessResult{}, fmt.Errorf("%w: expected %d answers, got %d", ErrBadRequest, len(answer.LyricsAnswers), len(words))
	}

	matches := 0
	for i, w := range words {
		if strings.EqualFold(strings.TrimSpace(w), strings.TrimSpace(answer.LyricsAnswers[i])) {
			matches++
		}
	}

	score := 100 * matches / len(answer.LyricsAnswers)
	result.MatchScore = score
	result.IsCorrect = score == 100
	result.CorrectWords = answer.LyricsAnswers
	switch {
	case score == 100:
		result.Message = constants.MsgPerfect
	case score >= constants.ScoreCloseThreshold:
		result.Message = constants.MsgClose
	default:
		result.Message = constants.MsgKeepTrying
	}
	return result, nil
}

// Similarity is a 0-100 closeness score between two strings, case and
// surrounding-whitespace insensitive, tolerant of small misspellings.
func Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	score := 100 - (100*distance)/longest
	if score < 0 {
		score = 0
	}
	return score
}

// toStringSlice accepts both []string and the []any produced by JSON
// decoding of a string array.
func toStringSlice(guess any) ([]string, error) {
	switch v := guess.(type) {
	case []string:
		return v, nil
	case []any:
		words := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %T is not a string", item)
			}
			words = append(words, s)
		}
		return words, nil
	default:
		return nil, fmt.Errorf("unsupported guess type %T", guess)
	}
}
