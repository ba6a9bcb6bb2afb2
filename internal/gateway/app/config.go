package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BackendURL string // Base URL of the auth service (default: http://localhost:8080)

	CookieMaxAge    time.Duration // Session cookie lifetime (default: 168h)
	SessionCacheTTL time.Duration // How long a positive /me verdict is cached (default: 60s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8081)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		BackendURL:          getEnvOrDefault("GATEWAY_BACKEND_URL", "http://localhost:8080"),
		CookieMaxAge:        getEnvDurationOrDefault("GATEWAY_COOKIE_MAX_AGE", 168*time.Hour),
		SessionCacheTTL:     getEnvDurationOrDefault("GATEWAY_SESSION_CACHE_TTL", time.Minute),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8081),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// CookieSecure reports whether the session cookie should carry the Secure
// flag. Prod only: local dev runs on plain HTTP.
func (c Config) CookieSecure() bool {
	return c.Env == "prod"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
