package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the mock backend.
type Config struct {
	Host string `env:"MOCK_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"MOCK_PORT" envDefault:"8081"`

	// JWT Configuration
	JWTSecretKey string        `env:"MOCK_JWT_SECRET" envDefault:"defensa-civil-mock-secret-do-not-use-in-prod"`
	JWTIssuer    string        `env:"MOCK_JWT_ISSUER" envDefault:"defensa-civil-mock"`
	TokenTTL     time.Duration `env:"MOCK_TOKEN_TTL" envDefault:"24h"`

	// Seeded account
	SeedCedula string `env:"MOCK_SEED_CEDULA" envDefault:"00112345678"`
	SeedClave  string `env:"MOCK_SEED_CLAVE" envDefault:"defensa123"`
	SeedNombre string `env:"MOCK_SEED_NOMBRE" envDefault:"Usuario de Prueba"`
	SeedCorreo string `env:"MOCK_SEED_CORREO" envDefault:"prueba@defensacivil.gob.do"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load mock backend configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the backend cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return errors.New("mock_jwt_secret is required")
	}
	if c.JWTIssuer == "" {
		return errors.New("mock_jwt_issuer is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("mock_token_ttl must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("mock_port %d out of range", c.Port)
	}
	return nil
}

// Addr returns host:port to listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
