package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/lumeva/authcore/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim stamped into tokens

	AccessSigningKey  string        // Required: HS256 secret for access tokens
	RefreshSigningKey string        // Required: HS256 secret for refresh tokens
	AccessTTL         time.Duration // Access token lifetime (default: 30s)
	RefreshTTL        time.Duration // Refresh token lifetime (default: 168h)

	DatabaseFile         string        // Path to SQLite database file (default: ./authcore.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Whitelist cleanup interval (default: 1h)
}

var ErrMissingSigningKeys = errors.New("app: AUTH_ACCESS_SIGNING_KEY and AUTH_REFRESH_SIGNING_KEY must be set")

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("AUTH_ISSUER", "authcore"),
		AccessSigningKey:     os.Getenv("AUTH_ACCESS_SIGNING_KEY"),
		RefreshSigningKey:    os.Getenv("AUTH_REFRESH_SIGNING_KEY"),
		AccessTTL:            getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:           getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "authcore.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

// Validate checks that the required secrets are present. Token secrets have
// no sane default; the two keys must also differ so one leaked key cannot
// forge both token classes.
func (cfg Config) Validate() error {
	if cfg.AccessSigningKey == "" || cfg.RefreshSigningKey == "" {
		return ErrMissingSigningKeys
	}
	if cfg.AccessSigningKey == cfg.RefreshSigningKey {
		return errors.New("app: access and refresh signing keys must differ")
	}
	return nil
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

	// Accept duration strings ("30s", "1h") and bare integers as seconds.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
