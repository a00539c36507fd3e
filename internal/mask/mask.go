// Package mask turns lyrics text into a puzzle. Two strategies exist:
// ratio masking redacts random words to asterisk runs (the answer is
// unrecoverable from the output), blank extraction replaces chosen
// words with numbered placeholders and returns the hidden words so they
// can travel inside the round token.
package mask

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/models"
)

// Word-like tokens: alphanumeric runs including apostrophes.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9']+`)

// Words redacts each whitespace-delimited word longer than two
// characters with probability ratio, replacing it by a *-run of equal
// length. Words are rejoined with single spaces.
func Words(text string, ratio float64) string {
	words := strings.Fields(text)
	masked := lo.Map(words, func(w string, _ int) string {
		if len(w) > constants.MinMaskableLen && rand.Float64() < ratio {
			return strings.Repeat("*", len(w))
		}
		return w
	})
	return strings.Join(masked, " ")
}

// ExtractBlanks replaces floor(eligible*ratio) word spans (at least one)
// with [BLANK_k] placeholders numbered left to right, copying all other
// text verbatim. The metadata and answer lists are index-aligned with
// the placeholder numbering; the evaluator depends on that ordering.
// Zero eligible words returns the text unchanged with empty lists.
func ExtractBlanks(text string, ratio float64) (string, []models.BlankMetadata, []string) {
	spans := wordPattern.FindAllStringIndex(text, -1)
	eligible := lo.Filter(spans, func(s []int, _ int) bool {
		return s[1]-s[0] > constants.MinMaskableLen
	})
	if len(eligible) == 0 {
		return text, []models.BlankMetadata{}, []string{}
	}

	count := int(float64(len(eligible)) * ratio)
	if count < 1 {
		count = 1
	}
	if count > len(eligible) {
		count = len(eligible)
	}

	chosen := rand.Perm(len(eligible))[:count]
	sort.Ints(chosen)

	var out strings.Builder
	meta := make([]models.BlankMetadata, 0, count)
	answers := make([]string, 0, count)
	prev := 0
	for i, idx := range chosen {
		span := eligible[idx]
		out.WriteString(text[prev:span[0]])
		key := fmt.Sprintf("BLANK_%d", i+1)
		out.WriteString("[" + key + "]")
		meta = append(meta, models.BlankMetadata{Key: key, Length: span[1] - span[0]})
		answers = append(answers, text[span[0]:span[1]])
		prev = span[1]
	}
	out.WriteString(text[prev:])
	return out.String(), meta, answers
}

// Truncate caps already-masked display text, appending a marker when cut.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// TruncateAtWord cuts source text to the last full word within max
// characters. Used before blank extraction so no blank ever spans the
// truncation boundary.
func TruncateAtWord(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndexAny(cut, " \t\n"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
