package persistence

import (
	"context"
	"sync"

	"civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/session/domain/repository"
)

// MemoryBackend keeps the session in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu      sync.RWMutex
	session model.Session
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(ctx context.Context) (model.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session, nil
}

func (b *MemoryBackend) Save(ctx context.Context, session model.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = session
	return nil
}

func (b *MemoryBackend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = model.Session{}
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

var _ repository.Backend = (*MemoryBackend)(nil)
