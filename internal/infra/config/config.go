package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPraktikumAPIURL = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule    = "@every 5m"
	DefaultRetryDelay      = 5 * time.Second
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultTelegramRate    = 1
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PraktikumToken  string
	PraktikumAPIURL string
	TelegramToken   string
	TelegramAPIURL  string // Empty means the telebot default
	TelegramChatID  int64
	TelegramRate    int // Messages per second
	PollSchedule    string
	RetryDelay      time.Duration
	HTTPTimeout     time.Duration
	LogLevel        string
	LogFile         string
	Environment     string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing secrets are reported as errors; the caller must not start polling without them.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.PraktikumToken = os.Getenv("PRAKTIKUM_TOKEN")
	if cfg.PraktikumToken == "" {
		return nil, fmt.Errorf("PRAKTIKUM_TOKEN is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.PraktikumAPIURL = os.Getenv("PRAKTIKUM_API_URL")
	if cfg.PraktikumAPIURL == "" {
		cfg.PraktikumAPIURL = DefaultPraktikumAPIURL
	}
	cfg.TelegramAPIURL = os.Getenv("TELEGRAM_API_URL")

	cfg.PollSchedule = os.Getenv("POLL_SCHEDULE")
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = DefaultPollSchedule
	}

	if cfg.RetryDelay, err = durationEnv("RETRY_DELAY", DefaultRetryDelay); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}

	cfg.TelegramRate = DefaultTelegramRate
	if s := os.Getenv("TELEGRAM_RATE_PER_SEC"); s != "" {
		cfg.TelegramRate, err = strconv.Atoi(s)
		if err != nil || cfg.TelegramRate <= 0 {
			return nil, fmt.Errorf("invalid TELEGRAM_RATE_PER_SEC %q", s)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	cfg.LogFile = os.Getenv("LOG_FILE")

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
