package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORTER_HTTP_ADDR", "PORTER_TRACKING_ROUTE_COOLDOWN", "PORTER_RATE_LIMIT_BURST", "PORTER_FACILITY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 60*time.Second, cfg.Tracking.RouteCooldown)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, "NAIA", cfg.Booking.Facility)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTER_HTTP_ADDR", ":9090")
	t.Setenv("PORTER_TRACKING_ROUTE_COOLDOWN", "30s")
	t.Setenv("PORTER_RATE_LIMIT_RPS", "2.5")
	t.Setenv("PORTER_RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("PORTER_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.Tracking.RouteCooldown)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst, "unparsable values fall back to the default")
	assert.True(t, cfg.Production())
}
