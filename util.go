package main

import (
	"os"
	"strconv"
	"time"

	zlog "github.com/rs/zerolog/log"
)

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		zlog.Warn().Str("key", key).Err(err).Dur("fallback", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		zlog.Warn().Str("key", key).Err(err).Int("fallback", fallback).Msg("Invalid int, using default")
		return fallback
	}
	return i
}

func getEnvFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		zlog.Warn().Str("key", key).Err(err).Float64("fallback", fallback).Msg("Invalid float, using default")
		return fallback
	}
	return f
}
