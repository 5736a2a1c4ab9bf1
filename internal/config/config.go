// Package config reads runtime settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds everything the serve command needs. The CLI commands read
// their inputs from flags; the environment only drives the long-running
// server.
type Config struct {
	Port     int
	Source   string
	CacheTTL time.Duration
}

// Load reads the environment with defaults suitable for local use.
func Load() Config {
	return Config{
		Port:     envInt("CHATSTATS_PORT", 8203),
		Source:   envStr("CHATSTATS_SOURCE", "conversations.json"),
		CacheTTL: time.Duration(envInt("CHATSTATS_CACHE_TTL_SECONDS", 3600)) * time.Second,
	}
}

// NewLogger builds the process-wide JSON logger. LOG_LEVEL accepts debug,
// warn, or error; anything else means info.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch envStr("LOG_LEVEL", "") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
