// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	FeedURL    string // TripIt ICS feed, or an RSS bridge of it
	FeedFormat string // "ics" or "rss"

	TodoistToken string

	ContactsDir   string
	RadiusKM      float64
	LookaheadDays int
	Timezone      string

	StateFile    string
	GeoCacheFile string

	UserAgent string // identifies us to the feed host and the geocoder
	LogLevel  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		FeedURL:       envStr("TRIPCHECK_FEED_URL", ""),
		FeedFormat:    envStr("TRIPCHECK_FEED_FORMAT", "ics"),
		TodoistToken:  envStr("TODOIST_API_TOKEN", ""),
		ContactsDir:   envStr("TRIPCHECK_CONTACTS_DIR", defaultContactsDir()),
		RadiusKM:      envFloat("TRIPCHECK_RADIUS_KM", 50),
		LookaheadDays: envInt("TRIPCHECK_LOOKAHEAD_DAYS", 90),
		Timezone:      envStr("TRIPCHECK_TIMEZONE", "UTC"),
		StateFile:     envStr("TRIPCHECK_STATE_FILE", "state.json"),
		GeoCacheFile:  envStr("TRIPCHECK_GEO_CACHE_FILE", "geo_cache.json"),
		UserAgent:     envStr("TRIPCHECK_USER_AGENT", "tripcheck/1.0 (personal use)"),
		LogLevel:      envStr("TRIPCHECK_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present. The Todoist token
// is checked by the caller instead, since a dry run does not need one.
func (c Config) Validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("config: TRIPCHECK_FEED_URL is required")
	}
	if c.FeedFormat != "ics" && c.FeedFormat != "rss" {
		return fmt.Errorf("config: TRIPCHECK_FEED_FORMAT must be ics or rss, got %q", c.FeedFormat)
	}
	if c.RadiusKM <= 0 {
		return fmt.Errorf("config: TRIPCHECK_RADIUS_KM must be positive")
	}
	if c.LookaheadDays <= 0 {
		return fmt.Errorf("config: TRIPCHECK_LOOKAHEAD_DAYS must be positive")
	}
	return nil
}

func defaultContactsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "travel-contacts"
	}
	return filepath.Join(home, "travel-contacts")
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
