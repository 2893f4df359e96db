// Package config loads and validates application configuration from
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// Drivers lists every supported storage driver.
var Drivers = []string{DriverMemory, DriverFile, DriverPostgres, DriverSQLite, DriverRedis}

// Config holds all configuration values for the API server and tripctl.
// Values are populated by Load.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the handler: "json" (default) or "text" for
	// colourised human-readable output.
	LogFormat string

	// LogFile, when set, also writes logs to a size-rotated file.
	LogFile string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageDriver picks where the trip collection is persisted. Defaults to "file".
	StorageDriver string

	// DataDir is the directory used by the file driver. Defaults to "data".
	DataDir string

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string

	// RedisAddr, RedisPassword and RedisPrefix configure the redis driver.
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string

	// SeedOnEmpty fills an empty collection with sample trips at startup.
	SeedOnEmpty bool

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// InsightsCacheTTL is how long computed trip insights are memoised.
	// Zero disables the cache.
	InsightsCacheTTL time.Duration
}

// Load reads configuration from the environment, layered over CONFIG_FILE
// when that names a YAML file. Environment variables always win.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("STORAGE_DRIVER", DriverFile)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "trips.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_PREFIX", "tripplanner:")
	v.SetDefault("SEED_ON_EMPTY", false)
	v.SetDefault("MAX_BODY_BYTES", int64(1<<20))
	v.SetDefault("INSIGHTS_CACHE_TTL", 5*time.Minute)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Port:             v.GetString("PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        strings.ToLower(v.GetString("LOG_FORMAT")),
		LogFile:          v.GetString("LOG_FILE"),
		CORSOrigins:      splitCSV(v.GetString("CORS_ORIGINS")),
		StorageDriver:    strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DataDir:          v.GetString("DATA_DIR"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisPrefix:      v.GetString("REDIS_PREFIX"),
		SeedOnEmpty:      v.GetBool("SEED_ON_EMPTY"),
		MaxBodyBytes:     v.GetInt64("MAX_BODY_BYTES"),
		InsightsCacheTTL: v.GetDuration("INSIGHTS_CACHE_TTL"),
	}

	if !slices.Contains(Drivers, cfg.StorageDriver) {
		return Config{}, fmt.Errorf("STORAGE_DRIVER %q is not one of: %s", cfg.StorageDriver, strings.Join(Drivers, ", "))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT %q must be json or text", cfg.LogFormat)
	}

	var missing []string
	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverRedis:
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
