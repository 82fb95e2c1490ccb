package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, "localhost:3000", cfg.Addr())
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfig_RelativeLoginPath(t *testing.T) {
	t.Setenv("LOGIN_PATH", "login")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:8081,https://app.defensacivil.gob.do")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:8081", "https://app.defensacivil.gob.do"}, cfg.AllowedOrigins)
}

func TestLoadConfig_RejectsWildcardOrigin(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "*")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("CORS_ALLOW_ORIGINS", "localhost")
	_, err = LoadConfig()
	assert.Error(t, err)
}
