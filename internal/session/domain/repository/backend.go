package repository

import (
	"context"

	"civil-defense-app/internal/session/domain/model"
)

// Backend persists the session pair across restarts.
// Implementations write token and user id together so a concurrent
// reader never sees one field updated and the other stale.
type Backend interface {
	// Load returns the persisted session, or the zero Session if nothing is stored.
	Load(ctx context.Context) (model.Session, error)
	// Save replaces both persisted fields.
	Save(ctx context.Context, session model.Session) error
	// Clear removes both persisted fields.
	Clear(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}
