// Package config reads the ADMITDESK_* environment into an explicit,
// injectable configuration value. There is no package-level singleton; every
// consumer receives its Config at construction.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL points at a locally running backend.
	DefaultAPIBaseURL = "http://localhost:8000"

	defaultRequestTimeout = 15 * time.Second
)

// Config holds runtime options for the CLI and TUI.
type Config struct {
	// APIBaseURL is the backend base URL (ADMITDESK_API_URL).
	APIBaseURL string

	// SessionPath is where the login session is persisted (ADMITDESK_SESSION).
	SessionPath string

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration

	// Debug enables file logging for the TUI (ADMITDESK_DEBUG).
	Debug bool
}

// Load builds a Config from the environment, applying defaults.
func Load() Config {
	return Config{
		APIBaseURL:     getEnvDefault("ADMITDESK_API_URL", DefaultAPIBaseURL),
		SessionPath:    getEnvDefault("ADMITDESK_SESSION", defaultSessionPath()),
		RequestTimeout: defaultRequestTimeout,
		Debug:          os.Getenv("ADMITDESK_DEBUG") == "1",
	}
}

// SecureCookies reports whether sessions for this base URL should carry the
// Secure cookie attribute, i.e. the backend is reached over TLS.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(c.APIBaseURL, "https://")
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".admitdesk", "session.json")
	}
	return filepath.Join(home, ".admitdesk", "session.json")
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
