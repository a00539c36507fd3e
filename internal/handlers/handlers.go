// Package handlers exposes the game pipeline over HTTP.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/game"
	"github.com/CodeAndHammer/kantoludo/internal/lyrics"
	"github.com/CodeAndHammer/kantoludo/internal/models"
	"github.com/CodeAndHammer/kantoludo/internal/token"
)

var logger = log.With().Str("component", "handlers").Logger()

var validModes = map[string]struct{}{
	constants.ModeArtist:  {},
	constants.ModeTrack:   {},
	constants.ModeLyrics:  {},
	constants.ModeShuffle: {},
}

var validDifficulties = map[string]struct{}{
	constants.DifficultyEasy:   {},
	constants.DifficultyHard:   {},
	constants.DifficultyRandom: {},
}

// GameHandler wires the round builder and token codec to the routes.
type GameHandler struct {
	builder       *game.Builder
	codec         *token.Codec
	startTime     time.Time
	providerCount int
}

func New(builder *game.Builder, codec *token.Codec, providerCount int) *GameHandler {
	return &GameHandler{
		builder:       builder,
		codec:         codec,
		startTime:     time.Now(),
		providerCount: providerCount,
	}
}

// NewRound handles GET /game/new.
func (h *GameHandler) NewRound(c *gin.Context) {
	mode, difficulty, ok := h.roundParams(c)
	if !ok {
		return
	}

	round, err := h.builder.BuildRound(c.Request.Context(), mode, difficulty)
	if err != nil {
		if errors.Is(err, lyrics.ErrLyricsUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not fetch lyrics provider."})
			return
		}
		logger.Error().Err(err).Msg("Round build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build round."})
		return
	}
	c.JSON(http.StatusOK, round)
}

// Queue handles GET /game/queue. Counts outside [5,10] are clamped into
// the allowed range; a non-numeric count is a client error.
func (h *GameHandler) Queue(c *gin.Context) {
	mode, difficulty, ok := h.roundParams(c)
	if !ok {
		return
	}

	count := constants.QueueMinCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid count %q.", raw)})
			return
		}
		count = min(max(parsed, constants.QueueMinCount), constants.QueueMaxCount)
	}

	rounds := h.builder.BuildQueue(c.Request.Context(), count, mode, difficulty)
	c.JSON(http.StatusOK, models.QueueResponse{Rounds: rounds})
}

// Submit handles POST /game/submit.
func (h *GameHandler) Submit(c *gin.Context) {
	var req models.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed submission body."})
		return
	}

	answer, err := h.codec.Decode(req.GameToken)
	if err != nil {
		logger.Warn().Msg("Rejected invalid game token")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or tampered game token."})
		return
	}

	result, err := game.Evaluate(answer, req.UserGuess, req.GiveUp)
	if err != nil {
		if errors.Is(err, game.ErrBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error().Err(err).Msg("Guess evaluation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not evaluate guess."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Healthz reports process vitals.
func (h *GameHandler) Healthz(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"providers":       h.providerCount,
		"memory_alloc_mb": m.Alloc / 1024 / 1024,
		"memory_sys_mb":   m.Sys / 1024 / 1024,
		"memory_gc_count": m.NumGC,
		"uptime":          formatUptime(time.Since(h.startTime)),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *GameHandler) roundParams(c *gin.Context) (string, string, bool) {
	mode := c.DefaultQuery("mode", constants.ModeShuffle)
	if _, ok := validModes[mode]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown mode %q.", mode)})
		return "", "", false
	}
	difficulty := c.DefaultQuery("difficulty", constants.DifficultyRandom)
	if _, ok := validDifficulties[difficulty]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown difficulty %q.", difficulty)})
		return "", "", false
	}
	return mode, difficulty, true
}

func formatUptime(d time.Duration) string {
	seconds := int(d.Seconds()) % 60
	minutes := int(d.Minutes()) % 60
	hours := int(d.Hours())
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
