package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Backend BackendConfig
	Logging LoggingConfig
	Display DisplayConfig
}

// BackendConfig holds prediction backend client settings
type BackendConfig struct {
	URL            string        `env:"CARPRICE_API_URL" envDefault:"http://127.0.0.1:5000"`
	PredictTimeout time.Duration `env:"PREDICT_TIMEOUT" envDefault:"30s"`
	OptionsTimeout time.Duration `env:"OPTIONS_TIMEOUT" envDefault:"10s"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// DisplayConfig holds presentation settings for the terminal screens
type DisplayConfig struct {
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"₹"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return fmt.Errorf("CARPRICE_API_URL is required")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("CARPRICE_API_URL is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CARPRICE_API_URL must be an absolute http(s) URL")
	}
	if c.Backend.PredictTimeout < 0 {
		return fmt.Errorf("PREDICT_TIMEOUT must not be negative")
	}
	if c.Backend.OptionsTimeout < 0 {
		return fmt.Errorf("OPTIONS_TIMEOUT must not be negative")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}

// BaseURL returns the backend URL without a trailing slash so endpoint paths can be appended
func (c *Config) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
}
