package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TRIPCHECK_FEED_URL", "https://www.tripit.com/feed/ical/private/abc/tripit.ics")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ics", cfg.FeedFormat)
	assert.Equal(t, 50.0, cfg.RadiusKM)
	assert.Equal(t, 90, cfg.LookaheadDays)
	assert.Equal(t, "state.json", cfg.StateFile)
	assert.Equal(t, "geo_cache.json", cfg.GeoCacheFile)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.NotEmpty(t, cfg.ContactsDir)
	assert.NotEmpty(t, cfg.UserAgent)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRIPCHECK_FEED_URL", "https://example.com/trips.rss")
	t.Setenv("TRIPCHECK_FEED_FORMAT", "rss")
	t.Setenv("TRIPCHECK_RADIUS_KM", "25.5")
	t.Setenv("TRIPCHECK_LOOKAHEAD_DAYS", "30")
	t.Setenv("TRIPCHECK_TIMEZONE", "America/Chicago")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rss", cfg.FeedFormat)
	assert.Equal(t, 25.5, cfg.RadiusKM)
	assert.Equal(t, 30, cfg.LookaheadDays)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
}

func TestLoadRequiresFeedURL(t *testing.T) {
	t.Setenv("TRIPCHECK_FEED_URL", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRIPCHECK_FEED_URL")
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := Config{FeedURL: "https://example.com/t.ics", FeedFormat: "ics", RadiusKM: 50, LookaheadDays: 90}

	bad := base
	bad.FeedFormat = "csv"
	assert.Error(t, bad.Validate())

	bad = base
	bad.RadiusKM = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.LookaheadDays = -1
	assert.Error(t, bad.Validate())

	assert.NoError(t, base.Validate())
}
