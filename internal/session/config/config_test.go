package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("SESSION_FILE", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, filepath.Join(home, ".defensa-civil", "session.json"), cfg.FilePath)
	assert.Equal(t, "defensa_civil:", cfg.RedisKeyPrefix)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	t.Setenv("SESSION_BACKEND", "FILE")
	t.Setenv("SESSION_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, path, cfg.FilePath)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "sqlite")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(&Config{RedisURL: "redis://localhost:6379/3"})
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, 3, client.Options().DB)

	_, err = NewRedisClient(&Config{RedisURL: "not a url"})
	assert.Error(t, err)
}
