package screens

import (
	"strings"

	"civil-defense-app/internal/api/domain/client"
	screenshttp "civil-defense-app/internal/screens/adapter/http"
	"civil-defense-app/internal/screens/config"
	sessionusecase "civil-defense-app/internal/session/usecase"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// ScreensModule serves the app screens over HTTP.
type ScreensModule struct {
	handler    *screenshttp.ScreensHTTPHandler
	middleware *screenshttp.SessionMiddleware
	origins    *screenshttp.OriginGuard
	config     *config.Config
}

// NewScreensModule creates the screens handler and its session middleware.
func NewScreensModule(cfg *config.Config, c client.CivilDefenseClient, sessions screenshttp.SessionStore, guard *sessionusecase.Guard, log logger.Logger) *ScreensModule {
	return &ScreensModule{
		handler:    screenshttp.NewScreensHTTPHandler(c, sessions, log),
		middleware: screenshttp.NewSessionMiddleware(guard, cfg.LoginPath, log),
		origins:    screenshttp.NewOriginGuard(cfg.AllowedOrigins, log),
		config:     cfg,
	}
}

// RegisterRoutes registers the screen routes with the provided router.
// CORS headers are only sent to configured origins, and cross-origin writes
// are rejected before any screen runs.
func (m *ScreensModule) RegisterRoutes(router fiber.Router) {
	if len(m.config.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(m.config.AllowedOrigins, ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}
	router.Use(m.origins.Check())
	m.handler.SetupRoutes(router, m.middleware)
}
