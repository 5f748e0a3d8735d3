package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment-derived settings for the catalog layer.
type Config struct {
	// DBDriver is the store driver, "sqlite3" or "postgres".
	DBDriver string
	// DBDSN is the driver-specific connection string.
	DBDSN string
	// CacheTTL is the freshness window for cached product reads.
	CacheTTL time.Duration
	// CacheCapacity is the maximum number of cached entries.
	CacheCapacity int
}

// Load reads configuration from the environment, honoring a .env file when
// present. Missing values fall back to a local SQLite store and the
// 60 second freshness window.
func Load() Config {
	godotenv.Load()

	cfg := Config{
		DBDriver:      getEnv("CATALOG_DB_DRIVER", "sqlite3"),
		DBDSN:         getEnv("CATALOG_DB_DSN", "file:catalog.db?_foreign_keys=on"),
		CacheTTL:      60 * time.Second,
		CacheCapacity: 10000,
	}

	if raw := os.Getenv("CATALOG_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.CacheTTL = time.Duration(secs) * time.Second
		}
	}
	if raw := os.Getenv("CATALOG_CACHE_CAPACITY"); raw != "" {
		if capacity, err := strconv.Atoi(raw); err == nil && capacity > 0 {
			cfg.CacheCapacity = capacity
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
