package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// DefaultBaseURL is the public civil-defense backend.
const DefaultBaseURL = "https://adamix.net/defensa_civil/"

// Config holds all configuration for the api module.
type Config struct {
	BaseURL   string        `env:"API_BASE_URL" envDefault:"https://adamix.net/defensa_civil/"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"0s"` // 0 keeps the transport default
	UserAgent string        `env:"API_USER_AGENT" envDefault:"defensa-civil-app/1.0"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load api configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the base URL and timeout.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("api_base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("api_base_url must be an absolute http(s) url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("api_base_url must use http or https")
	}
	if c.Timeout < 0 {
		return errors.New("api_timeout cannot be negative")
	}
	return nil
}
