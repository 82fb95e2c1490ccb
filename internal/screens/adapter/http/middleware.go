package http

import (
	"net/url"
	"strings"

	sessionusecase "civil-defense-app/internal/session/usecase"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"
	"civil-defense-app/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// requestContext copies the fiber request id into the user context so
// downstream logging can pick it up.
func requestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			ctx = utils.WithRequestID(ctx, id)
		}
		c.SetUserContext(utils.WithComponent(ctx, "screens"))
		return c.Next()
	}
}

// SessionMiddleware gates member screens.
type SessionMiddleware struct {
	guard     *sessionusecase.Guard
	loginPath string
	log       logger.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(guard *sessionusecase.Guard, loginPath string, log logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		guard:     guard,
		loginPath: loginPath,
		log:       log.WithComponent("screens_guard"),
	}
}

// RequireSession redirects to the login screen when no session token is
// held, remembering where the user was going.
func (m *SessionMiddleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := m.guard.RequireSession(c.UserContext())
		if err != nil {
			if errors.IsNotAuthenticated(err) {
				target := m.loginPath + "?next=" + url.QueryEscape(c.OriginalURL())
				m.log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
					"path": c.Path(),
				}).Info("Redirecting to login")
				return c.Redirect(target, fiber.StatusFound)
			}
			return err
		}

		c.SetUserContext(utils.WithUserID(c.UserContext(), session.UserID))
		return c.Next()
	}
}

// MsgCrossOrigin is returned when another site tries to act with the session.
const MsgCrossOrigin = "Origen no permitido"

// OriginGuard rejects state-changing requests a browser sends on behalf of a
// page from another origin. The gateway acts with the one stored session, so
// only its own origin and the configured ones may drive it. Requests without
// browser origin headers (CLI, curl) pass.
type OriginGuard struct {
	allowed map[string]struct{}
	log     logger.Logger
}

// NewOriginGuard creates a guard permitting the given origins besides the
// gateway's own.
func NewOriginGuard(allowed []string, log logger.Logger) *OriginGuard {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return &OriginGuard{
		allowed: set,
		log:     log.WithComponent("screens_origin_guard"),
	}
}

// Check is the middleware form of the guard.
func (g *OriginGuard) Check() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if g.permits(c) {
			return c.Next()
		}

		g.log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
			"path":   c.Path(),
			"origin": c.Get(fiber.HeaderOrigin),
		}).Warn("Rejected cross-origin request")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": MsgCrossOrigin})
	}
}

func (g *OriginGuard) permits(c *fiber.Ctx) bool {
	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" {
		site := c.Get("Sec-Fetch-Site")
		return site == "" || site == "same-origin" || site == "none"
	}
	if _, ok := g.allowed[origin]; ok {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, string(c.Request().Host()))
}
