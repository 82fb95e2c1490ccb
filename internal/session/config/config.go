package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all configuration for the session module.
type Config struct {
	Backend  string `env:"SESSION_BACKEND" envDefault:"file"`
	FilePath string `env:"SESSION_FILE"`

	// Redis Configuration
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisKeyPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"defensa_civil:"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load session configuration from environment: " + err.Error())
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendFile:
		if cfg.FilePath == "" {
			path, err := DefaultFilePath()
			if err != nil {
				return nil, err
			}
			cfg.FilePath = path
		}
	case BackendMemory:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("redis_url is required when session_backend is redis")
		}
	default:
		return nil, fmt.Errorf("session_backend must be one of 'file', 'memory' or 'redis', got %q", cfg.Backend)
	}

	return cfg, nil
}

// DefaultFilePath returns $HOME/.defensa-civil/session.json.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for session file: %w", err)
	}
	return filepath.Join(home, ".defensa-civil", "session.json"), nil
}
