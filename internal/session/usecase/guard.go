package usecase

import (
	"context"

	"civil-defense-app/internal/session/domain/model"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"
)

// SessionReader is the read side of the store.
type SessionReader interface {
	Current() model.Session
}

// Guard gates screens that need a logged-in user.
type Guard struct {
	sessions SessionReader
	log      logger.Logger
}

// NewGuard creates a guard over sessions.
func NewGuard(sessions SessionReader, log logger.Logger) *Guard {
	return &Guard{
		sessions: sessions,
		log:      log.WithComponent("session_guard"),
	}
}

// RequireSession returns the current session, or a NOT_AUTHENTICATED error
// when no token is held. It never mutates the store.
func (g *Guard) RequireSession(ctx context.Context) (model.Session, error) {
	session := g.sessions.Current()
	if !session.IsAuthenticated() {
		g.log.WithContext(ctx).Debug("No session token, login required")
		return model.Session{}, errors.NewNotAuthenticatedError("Debes iniciar sesión para continuar").
			WithCause(errors.ErrNotAuthenticated).
			WithComponent("session_guard")
	}
	return session, nil
}
