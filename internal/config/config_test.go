package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "bounty-service", cfg.App.Name)
	require.Equal(t, "8080", cfg.App.Port)
	require.Equal(t, 15, cfg.Cache.BugListTTLSeconds)
	require.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	require.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CACHE_BUG_LIST_TTL_SECONDS", "120")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.App.Port)
	require.Equal(t, 2*time.Minute, cfg.Cache.BugListTTL())
	require.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 0}
	require.Equal(t, time.Duration(0), app.RequestTimeout())

	app.RequestTimeoutSeconds = 30
	require.Equal(t, 30*time.Second, app.RequestTimeout())

	cache := CacheConfig{BugListTTLSeconds: -1}
	require.Equal(t, time.Duration(0), cache.BugListTTL())
}
