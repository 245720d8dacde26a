// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Postgres holds database connection settings. An empty DSN disables the
// database and switches the service to in-memory stores.
type Postgres struct {
	DSN string
}

// Redis holds cache connection settings. An empty URL disables the snapshot
// cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka holds audit stream settings. No brokers disables audit publishing.
type Kafka struct {
	Brokers []string
}

// Config is the full service configuration.
type Config struct {
	Addr          string
	JWTSigningKey string

	// WatchlistPath points at the watchlist snapshot file.
	WatchlistPath string
	// SnapshotTTL bounds how long a cached watchlist snapshot is reused.
	SnapshotTTL time.Duration

	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
}

// FromEnv builds a Config from SWIFTSCREEN_* environment variables.
func FromEnv() Config {
	return Config{
		Addr:          envDefault("SWIFTSCREEN_ADDR", ":8080"),
		JWTSigningKey: envDefault("SWIFTSCREEN_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		WatchlistPath: envDefault("SWIFTSCREEN_WATCHLIST_PATH", "watchlist.json"),
		SnapshotTTL:   envDuration("SWIFTSCREEN_SNAPSHOT_TTL", 15*time.Minute),
		Postgres: Postgres{
			DSN: os.Getenv("SWIFTSCREEN_POSTGRES_DSN"),
		},
		Redis: Redis{
			URL:          os.Getenv("SWIFTSCREEN_REDIS_URL"),
			PoolSize:     envInt("SWIFTSCREEN_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SWIFTSCREEN_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("SWIFTSCREEN_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("SWIFTSCREEN_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("SWIFTSCREEN_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers: envList("SWIFTSCREEN_KAFKA_BROKERS"),
		},
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
