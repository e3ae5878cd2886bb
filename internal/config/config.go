// Package config loads application configuration from environment
// variables (typically populated from a .env file at startup).
package config

import (
	"fmt"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultModel is the Gemini model used when MODEL is not set.
const DefaultModel = "gemini-2.5-flash-preview-04-17"

// Config is the root application configuration.
type Config struct {
	// APIKey authenticates against the Gemini API. An empty key is not a
	// startup error: the app runs and surfaces a configuration error on
	// the first generation attempt.
	APIKey       string `env:"API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	Model string `env:"MODEL" env-default:"gemini-2.5-flash-preview-04-17"`

	Host string `env:"HOST" env-default:"127.0.0.1"`
	Port int    `env:"PORT" env-default:"0"` // 0 picks a random free port

	// DataDir overrides the default ~/.promptgen state directory.
	DataDir string `env:"DATA_DIR"`

	OpenBrowser bool   `env:"OPEN_BROWSER" env-default:"true"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks invariants that cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("MODEL must not be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Key returns the effective Gemini API key. API_KEY wins over
// GEMINI_API_KEY, matching the original deployment convention.
func (c *Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.GeminiAPIKey
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
