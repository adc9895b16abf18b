package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	AuthFile    string
	ClassesFile string

	LogLevel    string
	Environment string

	// Outer-loop timing.
	CronSpecReserve   string // day-transition booking job
	CronSpecRelogin   string // session refresh; the API session lives ~1h
	CronSpecReconcile string // periodic schedule reconciliation

	MaxTries   int
	RetryDelay time.Duration
	WeekAhead  int
	DaysAhead  int

	HTTPTimeout      time.Duration
	PlatiniumBaseURL string

	// Optional integrations; empty means disabled.
	DatabaseURL    string
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.AuthFile = envOr("AUTH_FILE", "auth.json")
	cfg.ClassesFile = envOr("CLASSES_FILE", "classes.json")

	cfg.LogLevel = strings.ToLower(envOr("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(envOr("ENVIRONMENT", "development"))

	cfg.CronSpecReserve = envOr("CRON_SPEC_RESERVE", "0 0 * * *")       // midnight, when the next booking day opens
	cfg.CronSpecRelogin = envOr("CRON_SPEC_RELOGIN", "@every 58m")      // under the 1h session lifetime
	cfg.CronSpecReconcile = envOr("CRON_SPEC_RECONCILE", "0 8 * * MON") // weekly sanity check

	var err error
	if cfg.MaxTries, err = envInt("MAX_TRIES", 5); err != nil {
		return nil, err
	}
	if cfg.WeekAhead, err = envInt("WEEK_AHEAD", 1); err != nil {
		return nil, err
	}
	if cfg.DaysAhead, err = envInt("DAYS_AHEAD", 7); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = envDuration("RETRY_DELAY", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = envDuration("HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.PlatiniumBaseURL = envOr("PLATINIUM_BASE_URL", "https://stats.fitnessplatinium.pl:13002/club-api")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is set but TELEGRAM_CHAT_ID is not")
	}

	return cfg, nil
}

// Credentials are the login pair read from the auth file.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoadCredentials reads the auth file ({"username": ..., "password": ...}).
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading auth file: %w", err)
	}
	creds := &Credentials{}
	if err := json.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing auth file %s: %w", path, err)
	}
	return creds, nil
}

// LoadWeeklySchedule reads the classes file: a weekday-name to class-list
// mapping. Record validation happens later in schedule.BuildTable.
func LoadWeeklySchedule(path string) (schedule.WeeklySchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classes file: %w", err)
	}
	var classes schedule.WeeklySchedule
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("parsing classes file %s: %w", path, err)
	}
	return classes, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
