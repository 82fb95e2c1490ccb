package http

import (
	"strings"

	"civil-defense-app/internal/mockbackend/adapter/security"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const localsUserID = "user_id"

// AuthMiddleware validates bearer tokens on member endpoints.
type AuthMiddleware struct {
	tokens *security.TokenService
	log    logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokens *security.TokenService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		log:    log.WithComponent("mock_auth_middleware"),
	}
}

// Protect rejects requests without a valid bearer token with a 401 envelope.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fail(c, fiber.StatusUnauthorized, MsgTokenRequired)
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.log.WithFields(map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
			}).Debug("Rejected bearer token")
			return fail(c, fiber.StatusUnauthorized, MsgTokenInvalid)
		}

		c.Locals(localsUserID, claims.UserID)
		return c.Next()
	}
}

func userIDFrom(c *fiber.Ctx) (int, bool) {
	id, ok := c.Locals(localsUserID).(int)
	return id, ok
}
