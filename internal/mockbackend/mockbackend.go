package mockbackend

import (
	"fmt"

	mockhttp "civil-defense-app/internal/mockbackend/adapter/http"
	"civil-defense-app/internal/mockbackend/adapter/persistence"
	"civil-defense-app/internal/mockbackend/adapter/security"
	"civil-defense-app/internal/mockbackend/config"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// MockBackendModule is a local stand-in for the civil-defense backend.
type MockBackendModule struct {
	app     *fiber.App
	store   *persistence.MemoryStore
	tokens  *security.TokenService
	handler *mockhttp.BackendHTTPHandler
	config  *config.Config
	log     logger.Logger
}

// NewMockBackendModule wires the store, token service and routes, and seeds
// the configured account.
func NewMockBackendModule(cfg *config.Config, log logger.Logger) (*MockBackendModule, error) {
	return NewMockBackendModuleWithStore(cfg, persistence.NewMemoryStore(), log)
}

// NewMockBackendModuleWithStore is NewMockBackendModule over a caller-provided store.
func NewMockBackendModuleWithStore(cfg *config.Config, store *persistence.MemoryStore, log logger.Logger) (*MockBackendModule, error) {
	tokens, err := security.NewTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	if cfg.SeedCedula != "" {
		if _, err := store.CreateUser(cfg.SeedCedula, cfg.SeedClave, cfg.SeedNombre, cfg.SeedCorreo); err != nil {
			return nil, fmt.Errorf("failed to seed account: %w", err)
		}
	}

	handler := mockhttp.NewBackendHTTPHandler(store, tokens, log)
	app := fiber.New(fiber.Config{
		AppName:               "defensa-civil-mock",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Header: "X-Request-ID"}))

	handler.SetupRoutes(app, mockhttp.NewAuthMiddleware(tokens, log))

	return &MockBackendModule{
		app:     app,
		store:   store,
		tokens:  tokens,
		handler: handler,
		config:  cfg,
		log:     log.WithComponent("mock_backend"),
	}, nil
}

// App returns the fiber application, for tests and embedding.
func (m *MockBackendModule) App() *fiber.App {
	return m.app
}

// GetStore returns the in-memory data store
func (m *MockBackendModule) GetStore() *persistence.MemoryStore {
	return m.store
}

// Start listens on cfg.Addr() until Stop is called.
func (m *MockBackendModule) Start() error {
	m.log.WithFields(map[string]interface{}{"addr": m.config.Addr()}).Info("Mock backend listening")
	return m.app.Listen(m.config.Addr())
}

// Stop shuts the server down.
func (m *MockBackendModule) Stop() error {
	return m.app.Shutdown()
}
