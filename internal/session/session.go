package session

import (
	"context"
	"fmt"

	"civil-defense-app/internal/session/adapter/persistence"
	"civil-defense-app/internal/session/config"
	"civil-defense-app/internal/session/domain/repository"
	"civil-defense-app/internal/session/usecase"
	"civil-defense-app/internal/shared/logger"
)

// SessionModule bundles the session store, its backend and the guard.
type SessionModule struct {
	backend repository.Backend
	store   *usecase.Store
	guard   *usecase.Guard
}

// NewSessionModule builds the backend selected by cfg and primes the store from it.
func NewSessionModule(ctx context.Context, cfg *config.Config, log logger.Logger) (*SessionModule, error) {
	backend, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := usecase.NewStore(ctx, backend, log)
	if err != nil {
		backend.Close()
		return nil, err
	}

	log.WithComponent("session").WithFields(map[string]interface{}{
		"backend": cfg.Backend,
	}).Info("Session module initialized")

	return &SessionModule{
		backend: backend,
		store:   store,
		guard:   usecase.NewGuard(store, log),
	}, nil
}

// NewBackend returns the persistence backend named by cfg.Backend.
func NewBackend(ctx context.Context, cfg *config.Config) (repository.Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return persistence.NewMemoryBackend(), nil
	case config.BackendFile:
		backend, err := persistence.NewFileBackend(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create file session backend: %w", err)
		}
		return backend, nil
	case config.BackendRedis:
		client, err := config.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return persistence.NewRedisBackend(client, cfg.RedisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

// GetStore returns the session store
func (m *SessionModule) GetStore() *usecase.Store {
	return m.store
}

// GetGuard returns the authenticated-screen guard
func (m *SessionModule) GetGuard() *usecase.Guard {
	return m.guard
}

// Stop releases the backend.
func (m *SessionModule) Stop() error {
	return m.store.Close()
}

// HealthCheck reads the persisted pair back from the backend.
func (m *SessionModule) HealthCheck(ctx context.Context) error {
	if _, err := m.backend.Load(ctx); err != nil {
		return fmt.Errorf("session backend health check failed: %w", err)
	}
	return nil
}
