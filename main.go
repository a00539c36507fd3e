package main

import (
	"context"
	"crypto/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"github.com/CodeAndHammer/kantoludo/internal/constants"
	"github.com/CodeAndHammer/kantoludo/internal/game"
	"github.com/CodeAndHammer/kantoludo/internal/handlers"
	"github.com/CodeAndHammer/kantoludo/internal/lyrics"
	"github.com/CodeAndHammer/kantoludo/internal/recency"
	"github.com/CodeAndHammer/kantoludo/internal/songs"
	"github.com/CodeAndHammer/kantoludo/internal/token"
)

// App carries the request-scoped server state: rate limiters and their
// housekeeping configuration. Game state lives in tokens, never here.
type App struct {
	IsProduction   bool
	RateLimitRPS   int
	RateLimitBurst int
	RateLimiterTTL time.Duration
	LimiterMap     map[string]*rateLimiterEntry
	LimiterMutex   sync.RWMutex
}

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	setupLogging(isProduction)
	zlog.Info().Bool("production", isProduction).Msg("Starting Kantoludo")

	httpTimeout := getEnvDuration("HTTP_TIMEOUT", 10*time.Second)
	client := &http.Client{Timeout: httpTimeout}

	fallback := songs.LoadFallbackSongs(getEnvString("SONG_FILE", "data/songs.json"))
	recent := recency.New(constants.RecentTracksMax)
	providers := songs.DefaultProviders(client)
	selector := songs.NewSelector(providers, fallback, recent)
	resolver := lyrics.NewResolver(selector, client)
	codec := token.NewCodec(loadSecret(isProduction))
	builder := game.NewBuilder(resolver, codec, getEnvFloat("MASK_RATIO", constants.DefaultMaskRatio))
	handler := handlers.New(builder, codec, len(providers))

	app := &App{
		IsProduction:   isProduction,
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		RateLimiterTTL: getEnvDuration("RATE_LIMITER_TTL", 1*time.Hour),
		LimiterMap:     make(map[string]*rateLimiterEntry),
	}

	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(accessLogMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		zlog.Warn().Err(err).Msg("Failed to set trusted proxies")
	}

	router.GET(constants.RouteNewRound, app.rateLimitMiddleware(), handler.NewRound)
	router.GET(constants.RouteQueue, app.rateLimitMiddleware(), handler.Queue)
	router.POST(constants.RouteSubmit, app.rateLimitMiddleware(), handler.Submit)
	router.GET(constants.RouteHealthz, handler.Healthz)

	app.startCleanupRoutine()

	startServer(router)
}

func setupLogging(isProduction bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(getEnvString("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !isProduction {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// loadSecret returns the token-signing key. Production refuses to start
// without one; development generates an ephemeral key, which invalidates
// outstanding tokens on restart.
func loadSecret(isProduction bool) []byte {
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		return []byte(secret)
	}
	if isProduction {
		zlog.Fatal().Msg("SECRET_KEY must be set in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to generate ephemeral secret")
	}
	zlog.Warn().Msg("SECRET_KEY not set, using ephemeral development key")
	return key
}

func startServer(router *gin.Engine) {
	port := getEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		zlog.Info().Msg("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zlog.Warn().Err(err).Msg("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	zlog.Info().Str("port", port).Msg("Server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("Server failed to start")
	}
	<-idleConnsClosed
	zlog.Info().Msg("Server shutdown complete")
}

func (app *App) startCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			app.cleanupStaleRateLimiters()
		}
	}()
	zlog.Info().Msg("Started rate limiter cleanup routine")
}

func (app *App) cleanupStaleRateLimiters() {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()

	cutoffTime := time.Now().Add(-app.RateLimiterTTL)
	removedCount := 0

	for key, entry := range app.LimiterMap {
		if entry.LastAccess.Before(cutoffTime) {
			delete(app.LimiterMap, key)
			removedCount++
		}
	}

	if removedCount > 0 {
		zlog.Info().Int("removed", removedCount).Msg("Cleaned up stale rate limiters")
	}
}
