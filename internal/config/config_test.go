package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8000", cfg.AppPort)
	require.Equal(t, ":8000", cfg.HTTPAddress())
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 30, cfg.RateLimitMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "activities:roster", cfg.EventsChannel)
	require.False(t, cfg.EventsEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ACTIVITIES_APP_PORT", ":9090")
	t.Setenv("ACTIVITIES_LOG_LEVEL", "DEBUG")
	t.Setenv("ACTIVITIES_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ACTIVITIES_RATELIMIT_MAX", "5")
	t.Setenv("ACTIVITIES_RATELIMIT_WINDOW", "10s")
	t.Setenv("ACTIVITIES_SEED_FILE", " seeds/activities.yaml ")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 5, cfg.RateLimitMax)
	require.Equal(t, 10*time.Second, cfg.RateLimitWindow)
	require.Equal(t, "seeds/activities.yaml", cfg.SeedFile)
	require.True(t, cfg.EventsEnabled())
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("ACTIVITIES_SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "shutdown timeout")
}
