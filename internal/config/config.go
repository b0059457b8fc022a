// Package config provides environment-driven configuration for the Verse CLI.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultAPIBaseURL is used when VERSE_API_BASE_URL is not set.
const DefaultAPIBaseURL = "http://localhost:8000"

// DefaultHTTPTimeout bounds every backend request.
const DefaultHTTPTimeout = 15 * time.Second

// Config holds runtime configuration for the client.
type Config struct {
	// APIBaseURL is the root of the Verse backend, without the /api/v1 prefix.
	APIBaseURL string
	// StateDir is where the session cookie and local profile state live.
	StateDir string
	// HTTPTimeout bounds every outgoing request.
	HTTPTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset. It reads VERSE_API_BASE_URL, VERSE_STATE_DIR and
// VERSE_HTTP_TIMEOUT_SECONDS.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:  os.Getenv("VERSE_API_BASE_URL"),
		StateDir:    os.Getenv("VERSE_STATE_DIR"),
		HTTPTimeout: DefaultHTTPTimeout,
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".verse")
	}

	if raw := os.Getenv("VERSE_HTTP_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid VERSE_HTTP_TIMEOUT_SECONDS: %v", err)
		}
		cfg.HTTPTimeout = time.Duration(secs) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config error: invalid API base URL %q", c.APIBaseURL)
	}
	if c.StateDir == "" {
		return fmt.Errorf("config error: state directory is empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config error: HTTP timeout must be positive")
	}
	return nil
}
