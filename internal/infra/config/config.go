package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPollInterval   = time.Minute
	defaultTelegramRate   = 25 // messages per second, below Telegram's global cap
	defaultScheduleTZName = "UTC"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL   string
	TelegramToken string // optional; empty means inbox-only delivery
	PollInterval  time.Duration
	ScheduleTZ    *time.Location // the one timezone all wall-clock math uses
	TelegramRate  int
	LogLevel      string
	Environment   string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	// No token simply disables the Telegram surface; the engine and the
	// notification inbox do not depend on it.
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	cfg.PollInterval = defaultPollInterval
	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
		}
		if d < time.Second {
			return nil, fmt.Errorf("POLL_INTERVAL must be at least 1s, got %s", d)
		}
		cfg.PollInterval = d
	}

	tzName := os.Getenv("SCHEDULE_TIMEZONE")
	if tzName == "" {
		tzName = defaultScheduleTZName
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", tzName, err)
	}
	cfg.ScheduleTZ = loc

	cfg.TelegramRate = defaultTelegramRate
	if raw := os.Getenv("TELEGRAM_RATE_PER_SEC"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid TELEGRAM_RATE_PER_SEC: %q", raw)
		}
		cfg.TelegramRate = n
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}
