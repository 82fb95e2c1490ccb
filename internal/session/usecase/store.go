package usecase

import (
	"context"
	"fmt"
	"sync"

	"civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/session/domain/repository"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"
)

// SessionStore is the contract for reading and mutating the local session.
type SessionStore interface {
	Current() model.Session
	Token() string
	Set(ctx context.Context, session model.Session) error
	Clear(ctx context.Context) error
}

// Store owns the (token, userId) pair. Reads are served from memory, writes
// go to the backend first and only then become visible, so a reader never
// observes a pair that was not persisted. Backend I/O happens under writeMu
// only; mu is held just for the swap, so readers never wait on the backend.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	current model.Session
	backend repository.Backend
	log     logger.Logger
}

// NewStore creates a store primed with whatever the backend holds.
func NewStore(ctx context.Context, backend repository.Backend, log logger.Logger) (*Store, error) {
	session, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := &Store{
		current: session,
		backend: backend,
		log:     log.WithComponent("session_store"),
	}
	s.log.WithFields(map[string]interface{}{
		"state": session.State(),
	}).Debug("Session store initialized")
	return s, nil
}

// Current returns a copy of the session pair.
func (s *Store) Current() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	return s.Current().Token
}

// Set persists session and makes it current.
func (s *Store) Set(ctx context.Context, session model.Session) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.backend.Save(ctx, session); err != nil {
		s.log.WithContext(ctx).WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to persist session")
		return errors.WrapError(err, "failed to persist session").WithComponent("session_store")
	}
	s.swap(session)

	s.log.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id": session.UserID,
	}).Info("Session stored")
	return nil
}

// Clear removes both keys. The in-memory pair is dropped even if the
// backend fails, so a logout never leaves a usable token behind in process.
func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.swap(model.Session{})
	if err := s.backend.Clear(ctx); err != nil {
		s.log.WithContext(ctx).WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to clear persisted session")
		return errors.WrapError(err, "failed to clear session").WithComponent("session_store")
	}

	s.log.WithContext(ctx).Info("Session cleared")
	return nil
}

func (s *Store) swap(session model.Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

var _ SessionStore = (*Store)(nil)
