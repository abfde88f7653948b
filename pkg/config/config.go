// Package config loads application configuration from the environment, with
// an optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Database. DatabaseURL selects PostgreSQL when set; otherwise the
	// embedded SQLite store at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// Redis
	RedisURL         string
	CalendarCacheTTL time.Duration

	// RabbitMQ. Empty disables event publishing.
	RabbitMQURL string

	// CalDAV busy-time publishing.
	CalDAVURL           string
	CalDAVUsername      string
	CalDAVPassword      string
	CalDAVCalendarPath  string
	CalDAVDeleteMissing bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", defaultSQLitePath()),

		RedisURL:         getEnv("REDIS_URL", ""),
		CalendarCacheTTL: getDurationEnv("CALENDAR_CACHE_TTL", 5*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		CalDAVURL:           getEnv("CALDAV_URL", ""),
		CalDAVUsername:      getEnv("CALDAV_USERNAME", ""),
		CalDAVPassword:      getEnv("CALDAV_PASSWORD", ""),
		CalDAVCalendarPath:  getEnv("CALDAV_CALENDAR_PATH", ""),
		CalDAVDeleteMissing: getBoolEnv("CALDAV_DELETE_MISSING", false),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsePostgres reports whether the PostgreSQL store is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".availability/availability.db"
	}
	return home + "/.availability/availability.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
