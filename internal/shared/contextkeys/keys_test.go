package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "civil-defense-app context key testKey", key.String())
}

func TestContextKeys_Usage(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, UserIDKey, "42")
	ctx = context.WithValue(ctx, RequestIDKey, "req-456")
	ctx = context.WithValue(ctx, ComponentKey, "httpclient")
	ctx = context.WithValue(ctx, OperationKey, "fetchNews")

	assert.Equal(t, "42", ctx.Value(UserIDKey))
	assert.Equal(t, "req-456", ctx.Value(RequestIDKey))
	assert.Equal(t, "httpclient", ctx.Value(ComponentKey))
	assert.Equal(t, "fetchNews", ctx.Value(OperationKey))
	assert.Nil(t, ctx.Value(contextKey("other")))
}
