package persistence

import (
	"context"
	"fmt"

	"civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/session/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores userToken and userId as two Redis strings under a
// shared prefix. Both keys are written in one MULTI/EXEC.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend creates a Redis-backed session backend.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{
		client: client,
		prefix: prefix,
	}
}

func (b *RedisBackend) tokenKey() string  { return b.prefix + model.TokenKey }
func (b *RedisBackend) userIDKey() string { return b.prefix + model.UserIDKey }

func (b *RedisBackend) Load(ctx context.Context) (model.Session, error) {
	vals, err := b.client.MGet(ctx, b.tokenKey(), b.userIDKey()).Result()
	if err != nil {
		return model.Session{}, fmt.Errorf("redis load session: %w", err)
	}

	var session model.Session
	if len(vals) == 2 {
		if token, ok := vals[0].(string); ok {
			session.Token = token
		}
		if userID, ok := vals[1].(string); ok {
			session.UserID = userID
		}
	}
	return session, nil
}

func (b *RedisBackend) Save(ctx context.Context, session model.Session) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.tokenKey(), session.Token, 0)
		pipe.Set(ctx, b.userIDKey(), session.UserID, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Clear(ctx context.Context) error {
	if err := b.client.Del(ctx, b.tokenKey(), b.userIDKey()).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

var _ repository.Backend = (*RedisBackend)(nil)
