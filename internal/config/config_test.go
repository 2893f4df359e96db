package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. Viper treats an empty variable as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "CORS_ORIGINS",
		"STORAGE_DRIVER", "DATA_DIR", "DATABASE_URL", "SQLITE_PATH",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_PREFIX", "SEED_ON_EMPTY",
		"MAX_BODY_BYTES", "INSIGHTS_CACHE_TTL", "CONFIG_FILE",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every value falls back to its default when
// nothing is set, and that the default file driver needs no credentials.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, config.DriverFile, cfg.StorageDriver)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, "tripplanner:", cfg.RedisPrefix)
	require.False(t, cfg.SeedOnEmpty)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Equal(t, 5*time.Minute, cfg.InsightsCacheTTL)
}

// TestLoad_overrides verifies that values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/trips")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("SEED_ON_EMPTY", "true")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("INSIGHTS_CACHE_TTL", "30s")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, config.DriverPostgres, cfg.StorageDriver)
	require.Equal(t, "postgres://user:pass@db:5432/trips", cfg.DatabaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.True(t, cfg.SeedOnEmpty)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.Equal(t, 30*time.Second, cfg.InsightsCacheTTL)
}

// TestLoad_missingRequired verifies that drivers needing a connection target
// fail with an error naming the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	tests := []struct {
		driver  string
		missing string
	}{
		{config.DriverPostgres, "DATABASE_URL"},
		{config.DriverRedis, "REDIS_ADDR"},
	}
	for _, tc := range tests {
		t.Run(tc.driver, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORAGE_DRIVER", tc.driver)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tc.missing)
		})
	}
}

// TestLoad_unknownDriver verifies that a typo in STORAGE_DRIVER is rejected.
func TestLoad_unknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()

	require.ErrorContains(t, err, "STORAGE_DRIVER")
}

// TestLoad_configFile verifies that a YAML file fills in values the
// environment leaves unset, and that the environment still wins.
func TestLoad_configFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_DRIVER: sqlite\nSQLITE_PATH: /tmp/x.db\nPORT: \"7000\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9999")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, config.DriverSQLite, cfg.StorageDriver)
	require.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	require.Equal(t, "9999", cfg.Port)
}
