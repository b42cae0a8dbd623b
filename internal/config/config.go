package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/ai-tutor/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string   `env:"SERVER_ADDR" envDefault:":8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// External service configurations
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Session configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Metered unioffice key; DOCX export is offered only when it is set
	DocxLicenseKey string `env:"UNIOFFICE_LICENSE_KEY"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds

	// Delivery of replies to Telegram; safe to repeat, unlike completion calls
	SendRetry retry.RetryConfig `envPrefix:"SEND_RETRY_"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Model       string  `env:"MODEL" envDefault:"gemini-2.0-flash-exp"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"1200"`
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.7"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"2m"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"2m"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
}

// SessionConfig holds in-memory session lifecycle settings
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"2h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	HistoryMaxLimit int           `env:"HISTORY_MAX_LIMIT" envDefault:"50"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate LLM configuration
	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Token == "" {
		errors = append(errors, "LLM_TOKEN is required unless ENABLE_MOCKS is set")
	}

	if cfg.LLMConnectorCfg.MaxTokens < 1 || cfg.LLMConnectorCfg.MaxTokens > 32768 {
		errors = append(errors, fmt.Sprintf("LLM_MAX_TOKENS must be between 1 and 32768, got %d", cfg.LLMConnectorCfg.MaxTokens))
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %.2f", cfg.LLMConnectorCfg.Temperature))
	}

	// Validate Session configuration
	if cfg.SessionCfg.TTL <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be positive, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.HistoryMaxLimit < 1 || cfg.SessionCfg.HistoryMaxLimit > 500 {
		errors = append(errors, fmt.Sprintf("SESSION_HISTORY_MAX_LIMIT must be between 1 and 500, got %d", cfg.SessionCfg.HistoryMaxLimit))
	}

	// Validate Telegram configuration
	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.SendRetry.Attempts < 1 || cfg.TelegramCfg.SendRetry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SEND_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.TelegramCfg.SendRetry.Attempts))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
