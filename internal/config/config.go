package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

type HTTPConfig struct {
	Addr    string
	SiteURL string
}

type DatabaseConfig struct {
	Path     string
	LogLevel logger.LogLevel
	Seed     bool
}

type CacheConfig struct {
	DefaultTTL    time.Duration
	SweepInterval time.Duration
}

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Cache    CacheConfig
	LogLevel string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key, def string) (time.Duration, error) {
	raw := getenv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func dbLogLevel(v string) logger.LogLevel {
	switch strings.ToLower(v) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	ttl, err := duration("CACHE_DEFAULT_TTL", "5m")
	if err != nil {
		return nil, err
	}
	sweep, err := duration("CACHE_SWEEP_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTP: HTTPConfig{
			Addr:    getenv("HTTP_ADDR", ":8008"),
			SiteURL: strings.TrimRight(getenv("SITE_URL", "https://example.com"), "/"),
		},
		Database: DatabaseConfig{
			Path:     getenv("DB_PATH", "news-portal.db"),
			LogLevel: dbLogLevel(getenv("DB_LOG_LEVEL", "warn")),
			Seed:     getenv("SEED", "false") == "true",
		},
		Cache: CacheConfig{
			DefaultTTL:    ttl,
			SweepInterval: sweep,
		},
		LogLevel: getenv("LOG_LEVEL", "info"),
	}, nil
}
