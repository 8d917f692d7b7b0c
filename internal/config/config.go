// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds everything the application reads from the environment
type Config struct {
	// DBType selects the storage backend: "sqlite" or "postgres"
	DBType string
	// DatabaseURL is the postgres DSN; required when DBType is "postgres"
	DatabaseURL string
	// SQLitePath is the sqlite database file; required when DBType is "sqlite"
	SQLitePath string

	LogLevel string
	LogFile  string

	// ReminderEnabled turns the due-word reminder job on or off
	ReminderEnabled bool
	// ReminderInterval is how often the reminder job scans for due words
	ReminderInterval time.Duration
	// ReminderStartHour and ReminderEndHour bound the local hours during
	// which reminders may fire
	ReminderStartHour int
	ReminderEndHour   int

	// OpenAIKey enables AI hint suggestions when set; empty disables them
	OpenAIKey   string
	OpenAIModel string
}

// Load reads configuration from the environment, consulting .env if present.
func Load() (*Config, error) {
	// Missing .env is not an error; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "data/vocabot.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", "logs/vocabot.log"),
		ReminderEnabled:   getEnvBool("REMINDER_ENABLED", true),
		ReminderInterval:  getEnvDuration("REMINDER_INTERVAL", time.Hour),
		ReminderStartHour: getEnvInt("REMINDER_START_HOUR", 8),
		ReminderEndHour:   getEnvInt("REMINDER_END_HOUR", 22),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	switch c.DBType {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when DB_TYPE is sqlite")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DB_TYPE is postgres")
		}
	default:
		return errors.Errorf("unsupported DB_TYPE %q (want sqlite or postgres)", c.DBType)
	}

	if c.ReminderInterval <= 0 {
		return errors.New("REMINDER_INTERVAL must be positive")
	}
	if c.ReminderStartHour < 0 || c.ReminderStartHour > 23 {
		return errors.Errorf("REMINDER_START_HOUR must be 0-23, got %d", c.ReminderStartHour)
	}
	if c.ReminderEndHour < 0 || c.ReminderEndHour > 23 {
		return errors.Errorf("REMINDER_END_HOUR must be 0-23, got %d", c.ReminderEndHour)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
