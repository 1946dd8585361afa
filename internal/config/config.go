package config

import (
	"os"
	"time"
)

// Config is the gateway's environment-driven configuration.
type Config struct {
	HTTPPort   string
	BackendURL string

	// StateBackend selects the key-value store: file, redis, memory or
	// none (discard writes, every read misses).
	StateBackend   string
	StateFile      string
	RedisAddr      string
	RedisPassword  string
	StateNamespace string

	PollInterval    time.Duration
	RequestTimeout  time.Duration
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "https://clothstore-backend.onrender.com"),
		StateBackend:    getEnv("STATE_BACKEND", "file"),
		StateFile:       getEnv("STATE_FILE", "data/storefront-state.json"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		StateNamespace:  getEnv("STATE_NAMESPACE", "storefront"),
		PollInterval:    getDuration("NOTIFY_POLL_INTERVAL", 30*time.Second),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
