package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-wide configuration for a board session. Everything is
// read from DAYBOARD_* environment variables, with a .env file loaded first
// when present.
type Config struct {
	BackendURL string
	FeedURL    string
	APIToken   string
	DBPath     string
	TimeoutMs  int
	LogCalls   bool
}

// DefaultConfig returns a Config with sensible defaults. The local store
// lands under ~/.dayboard.
func DefaultConfig() Config {
	dbPath := "dayboard.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".dayboard", "dayboard.db")
	}
	return Config{
		BackendURL: "http://localhost:8080",
		FeedURL:    "ws://localhost:8080/api/feed",
		DBPath:     dbPath,
		TimeoutMs:  10000,
	}
}

// Load reads configuration from the environment, falling back to defaults
// for any unset values. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv("DAYBOARD_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("DAYBOARD_FEED_URL"); v != "" {
		cfg.FeedURL = v
	}
	if v := os.Getenv("DAYBOARD_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("DAYBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DAYBOARD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DAYBOARD_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	return cfg
}
