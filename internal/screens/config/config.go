package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the screens gateway configuration.
type Config struct {
	Host      string `env:"SERVER_HOST" envDefault:"localhost"`
	Port      string `env:"SERVER_PORT" envDefault:"3000"`
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`

	// Browser origins allowed to call the gateway besides its own. Empty
	// means same-origin only and no CORS headers are sent.
	AllowedOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load server configuration from environment: " + err.Error())
	}
	if !strings.HasPrefix(cfg.LoginPath, "/") {
		return nil, errors.New("login_path must start with '/'")
	}
	if cfg.Port == "" {
		return nil, errors.New("server_port is required")
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			return nil, errors.New("cors_allow_origins cannot be '*': the gateway acts with the stored session")
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("cors_allow_origins entry %q must be scheme://host[:port]", origin)
		}
	}
	return cfg, nil
}

// Addr returns host:port to listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
