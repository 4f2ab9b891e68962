// Package config gathers the environment configuration shared by the
// server and migration binaries. A .env file is loaded when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	JWTSecret string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CacheTTL  time.Duration
	CacheSize int64

	RateLimitPerMinute int
	MaxPerPage         int

	ImageDir string

	DenylistSweepInterval time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                  getString("ADDR", "0.0.0.0:8080"),
		JWTSecret:             getString("JWT_SECRET", ""),
		AccessTokenTTL:        getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:       getDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		CacheTTL:              getDuration("CACHE_TTL", time.Minute),
		CacheSize:             int64(getInt("CACHE_SIZE", 10000)),
		RateLimitPerMinute:    getInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxPerPage:            getInt("MAX_PER_PAGE", 100),
		ImageDir:              getString("IMAGE_DIR", "static/images"),
		DenylistSweepInterval: getDuration("DENYLIST_SWEEP_INTERVAL", time.Minute),
	}
}

// DBConnString builds the postgres connection string from the POSTGRES_*
// variables.
func DBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}

func getString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
