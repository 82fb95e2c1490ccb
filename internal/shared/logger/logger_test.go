package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"civil-defense-app/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInterface_Contract(t *testing.T) {
	var _ Logger = NewLogger()
	var _ Logger = NewLoggerWithConfig("info", "json")
	var _ Logger = NewNopLogger()
}

func TestLogrusLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(&buf, "debug", "json")

	ctx := context.Background()
	ctx = context.WithValue(ctx, contextkeys.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, contextkeys.OperationKey, "fetchNews")
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, "")

	log.WithContext(ctx).WithComponent("httpclient").Info("call finished")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "call finished", line["message"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "fetchNews", line["operation"])
	assert.Equal(t, "httpclient", line["component"])
	assert.NotContains(t, line, "user_id")
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(&buf, "warn", "text")

	log.Info("hidden")
	log.WithFields(map[string]interface{}{"status": 500}).Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "status=500")
}

func TestNewLoggerWithConfig_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(&buf, "loud", "text")
	log.Debug("debug line")
	log.Info("info line")
	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}
