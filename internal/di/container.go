package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"civil-defense-app/internal/api"
	"civil-defense-app/internal/api/adapter/httpclient"
	apiconfig "civil-defense-app/internal/api/config"
	"civil-defense-app/internal/screens"
	screensconfig "civil-defense-app/internal/screens/config"
	"civil-defense-app/internal/session"
	sessionconfig "civil-defense-app/internal/session/config"
	"civil-defense-app/internal/shared/logger"
)

const cleanupTimeout = 30 * time.Second

// Container owns the modules and shuts them down in reverse order.
type Container struct {
	mu sync.RWMutex
	// Module instances
	SessionModule *session.SessionModule
	APIModule     *api.APIModule
	ScreensModule *screens.ScreensModule
	// Configuration
	SessionConfig *sessionconfig.Config
	APIConfig     *apiconfig.Config
	ScreensConfig *screensconfig.Config
	// Logger
	Logger logger.Logger
}

// NewContainer creates an empty container. A nil log falls back to NewLogger.
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{Logger: log}
}

// InitializeSession opens the session backend and primes the store.
func (c *Container) InitializeSession(ctx context.Context, cfg *sessionconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	module, err := session.NewSessionModule(ctx, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create session module: %w", err)
	}

	c.SessionConfig = cfg
	c.SessionModule = module
	return nil
}

// InitializeAPI builds the backend client on top of the session store.
func (c *Container) InitializeAPI(cfg *apiconfig.Config, opts ...httpclient.Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SessionModule == nil {
		return fmt.Errorf("session module must be initialized before API module")
	}

	module, err := api.NewAPIModule(cfg, c.SessionModule.GetStore(), c.Logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create API module: %w", err)
	}

	c.APIConfig = cfg
	c.APIModule = module
	return nil
}

// InitializeScreens wires the screens gateway to the client and the guard.
func (c *Container) InitializeScreens(cfg *screensconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.APIModule == nil {
		return fmt.Errorf("API module must be initialized before screens module")
	}

	c.ScreensConfig = cfg
	c.ScreensModule = screens.NewScreensModule(
		cfg,
		c.APIModule.GetClient(),
		c.SessionModule.GetStore(),
		c.SessionModule.GetGuard(),
		c.Logger,
	)
	return nil
}

// GetSessionModule returns the session module instance
func (c *Container) GetSessionModule() *session.SessionModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SessionModule
}

// GetAPIModule returns the API module instance
func (c *Container) GetAPIModule() *api.APIModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIModule
}

// GetScreensModule returns the screens module instance
func (c *Container) GetScreensModule() *screens.ScreensModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ScreensModule
}

// HealthCheck checks the session backend. The remote API is not contacted.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.SessionModule == nil {
		return fmt.Errorf("session module not initialized")
	}
	return c.SessionModule.HealthCheck(ctx)
}

// Cleanup releases modules in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ScreensModule = nil
	c.APIModule = nil

	if c.SessionModule != nil {
		done := make(chan error, 1)
		go func(m *session.SessionModule) { done <- m.Stop() }(c.SessionModule)
		c.SessionModule = nil

		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("failed to stop session module: %w", err)
			}
		case <-ctx.Done():
			return fmt.Errorf("session module stop: %w", ctx.Err())
		}
	}
	return nil
}

// Close is Cleanup with a bounded timeout.
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.WithComponent("di").Warnf("cleanup errors occurred: %v", err)
		return err
	}
	c.Logger.WithComponent("di").Debug("Container resources closed")
	return nil
}
