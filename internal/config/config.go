// Package config provides configuration loading and validation for the CLI and HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/job-assistant/internal/schemas"
)

// Ledger backends
const (
	LedgerCSV      = "csv"
	LedgerPostgres = "postgres"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values are filled from the environment and then defaults.
type Config struct {
	// Storage
	LedgerPath        string `json:"ledger_path,omitempty"`         // CSV ledger file
	LedgerBackend     string `json:"ledger_backend,omitempty"`      // csv or postgres
	DatabaseURL       string `json:"database_url,omitempty"`        // PostgreSQL connection URL
	RedisAddr         string `json:"redis_addr,omitempty"`          // Session store; in-memory when empty
	RedisPassword     string `json:"redis_password,omitempty"`      // Redis AUTH password
	RedisDB           int    `json:"redis_db,omitempty"`            // Redis logical database
	SessionTTLMinutes int    `json:"session_ttl_minutes,omitempty"` // Idle session lifetime

	// Sources
	BoardsFile           string `json:"boards_file,omitempty"`            // YAML board definitions; embedded defaults when empty
	UseBrowser           bool   `json:"use_browser,omitempty"`            // Render boards marked render: true in headless Chrome
	SourceTimeoutSeconds int    `json:"source_timeout_seconds,omitempty"` // Per-adapter budget; 0 disables
	UserAgent            string `json:"user_agent,omitempty"`             // Outbound User-Agent

	// Language model
	LLMProvider string  `json:"llm_provider,omitempty"` // gemini or openai
	APIKey      string  `json:"api_key,omitempty"`      // Provider API key
	Model       string  `json:"model,omitempty"`        // Overrides the provider's standard-tier model
	Temperature float64 `json:"temperature,omitempty"`  // Sampling temperature

	// Notifications
	NotifyEmail      string `json:"notify_email,omitempty"`      // Recipient of confirmations and reminders
	SMTPHost         string `json:"smtp_host,omitempty"`         // SMTP server host
	SMTPPort         int    `json:"smtp_port,omitempty"`         // SMTP server port
	SMTPUsername     string `json:"smtp_username,omitempty"`     // SMTP PLAIN auth user
	SMTPPassword     string `json:"smtp_password,omitempty"`     // SMTP PLAIN auth password
	SMTPFrom         string `json:"smtp_from,omitempty"`         // Envelope sender
	TelegramToken    string `json:"telegram_token,omitempty"`    // Telegram bot token
	TelegramChatID   int64  `json:"telegram_chat_id,omitempty"`  // Telegram chat receiving notifications
	ReminderSchedule string `json:"reminder_schedule,omitempty"` // cron spec for interview reminders
	ReminderDays     int    `json:"reminder_days,omitempty"`     // Look-ahead window for reminders

	// Server
	Port               int `json:"port,omitempty"`                  // HTTP listen port
	RateLimitPerMinute int `json:"rate_limit_per_minute,omitempty"` // Requests per client per minute

	// Logging
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty"`   // Console log output and detailed CLI output
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		LedgerPath:         "applications.csv",
		LedgerBackend:      LedgerCSV,
		SessionTTLMinutes:  120,
		UserAgent:          "Mozilla/5.0 (compatible; JobAssistant/1.0)",
		LLMProvider:        ProviderGemini,
		Temperature:        0.7,
		SMTPPort:           587,
		ReminderSchedule:   "@daily",
		ReminderDays:       1,
		Port:               8080,
		RateLimitPerMinute: 60,
		LogLevel:           "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// The file is checked against the embedded JSON Schema before decoding.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the optional file at path, then
// environment overrides, then defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables. getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString(&c.LedgerPath, "LEDGER_PATH")
	setString(&c.LedgerBackend, "LEDGER_BACKEND")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.BoardsFile, "BOARDS_FILE")
	setString(&c.LLMProvider, "LLM_PROVIDER")
	setString(&c.Model, "LLM_MODEL")
	setString(&c.NotifyEmail, "NOTIFY_EMAIL")
	setString(&c.SMTPHost, "SMTP_HOST")
	setString(&c.SMTPUsername, "SMTP_USERNAME")
	setString(&c.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.SMTPFrom, "SMTP_FROM")
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.ReminderSchedule, "REMINDER_SCHEDULE")
	setString(&c.LogLevel, "LOG_LEVEL")

	if c.APIKey == "" {
		switch c.LLMProvider {
		case ProviderOpenAI:
			setString(&c.APIKey, "OPENAI_API_KEY")
		default:
			setString(&c.APIKey, "GEMINI_API_KEY")
		}
	}

	for key, dst := range map[string]*int{
		"REDIS_DB":               &c.RedisDB,
		"SMTP_PORT":              &c.SMTPPort,
		"PORT":                   &c.Port,
		"SOURCE_TIMEOUT_SECONDS": &c.SourceTimeoutSeconds,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}

	if v := getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}

	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.LedgerBackend {
	case LedgerCSV:
		if c.LedgerPath == "" {
			return fmt.Errorf("config error: 'ledger_path' is required for the csv ledger")
		}
	case LedgerPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres ledger")
		}
	default:
		return fmt.Errorf("config error: unknown ledger_backend %q", c.LedgerBackend)
	}

	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown llm_provider %q", c.LLMProvider)
	}

	if c.SourceTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'source_timeout_seconds' must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("config error: invalid log level: %s", c.LogLevel)
	}

	if c.BoardsFile != "" {
		if _, err := os.Stat(c.BoardsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: boards file not found: %s", c.BoardsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	for _, f := range []struct{ dst, def *string }{
		{&result.LedgerPath, &defaults.LedgerPath},
		{&result.LedgerBackend, &defaults.LedgerBackend},
		{&result.DatabaseURL, &defaults.DatabaseURL},
		{&result.RedisAddr, &defaults.RedisAddr},
		{&result.RedisPassword, &defaults.RedisPassword},
		{&result.BoardsFile, &defaults.BoardsFile},
		{&result.UserAgent, &defaults.UserAgent},
		{&result.LLMProvider, &defaults.LLMProvider},
		{&result.APIKey, &defaults.APIKey},
		{&result.Model, &defaults.Model},
		{&result.NotifyEmail, &defaults.NotifyEmail},
		{&result.SMTPHost, &defaults.SMTPHost},
		{&result.SMTPUsername, &defaults.SMTPUsername},
		{&result.SMTPPassword, &defaults.SMTPPassword},
		{&result.SMTPFrom, &defaults.SMTPFrom},
		{&result.TelegramToken, &defaults.TelegramToken},
		{&result.ReminderSchedule, &defaults.ReminderSchedule},
		{&result.LogLevel, &defaults.LogLevel},
	} {
		if *f.dst == "" {
			*f.dst = *f.def
		}
	}

	// Int fields: use default if zero
	for _, f := range []struct{ dst, def *int }{
		{&result.RedisDB, &defaults.RedisDB},
		{&result.SessionTTLMinutes, &defaults.SessionTTLMinutes},
		{&result.SourceTimeoutSeconds, &defaults.SourceTimeoutSeconds},
		{&result.SMTPPort, &defaults.SMTPPort},
		{&result.ReminderDays, &defaults.ReminderDays},
		{&result.Port, &defaults.Port},
		{&result.RateLimitPerMinute, &defaults.RateLimitPerMinute},
	} {
		if *f.dst == 0 {
			*f.dst = *f.def
		}
	}

	if result.TelegramChatID == 0 {
		result.TelegramChatID = defaults.TelegramChatID
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// SourceTimeout returns the per-adapter budget as a duration.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutSeconds) * time.Second
}

// SessionTTL returns the idle session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// SMTPConfigured reports whether enough SMTP settings exist to send mail.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != "" && c.NotifyEmail != ""
}

// TelegramConfigured reports whether Telegram notifications can be sent.
func (c *Config) TelegramConfigured() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
