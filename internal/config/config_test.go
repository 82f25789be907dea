package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("ANIMEAUX_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Animeaux API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 30*time.Second, cfg.ActivityCacheTTL)
	require.Equal(t, time.Hour, cfg.CronInterval)
	require.Equal(t, 60, cfg.RateLimitMax)
	require.Equal(t, "animeaux.activity", cfg.ActivitySubject())
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("ANIMEAUX_JWT_SECRET", "secret")
	t.Setenv("ANIMEAUX_APP_PORT", ":9090")
	t.Setenv("ANIMEAUX_ACTIVITY_CACHE_TTL", "2m")
	t.Setenv("ANIMEAUX_CRON_INTERVAL", "15m")
	t.Setenv("ANIMEAUX_CHANNEL_BASE", "animeaux:staging")
	t.Setenv("ANIMEAUX_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, 2*time.Minute, cfg.ActivityCacheTTL)
	require.Equal(t, 15*time.Minute, cfg.CronInterval)
	require.Equal(t, "animeaux.staging.activity", cfg.ActivitySubject())
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("ANIMEAUX_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("ANIMEAUX_JWT_SECRET", "secret")
	t.Setenv("ANIMEAUX_CRON_INTERVAL", "often")

	_, err := Load()
	require.ErrorContains(t, err, "cron.interval")
}
