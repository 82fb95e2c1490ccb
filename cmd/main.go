package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiconfig "civil-defense-app/internal/api/config"
	"civil-defense-app/internal/di"
	screensconfig "civil-defense-app/internal/screens/config"
	sessionconfig "civil-defense-app/internal/session/config"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🚨 Defensa Civil - Starting screens gateway...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	sessionCfg, err := sessionconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load session configuration: %v", err)
	}
	apiCfg, err := apiconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load api configuration: %v", err)
	}
	screensCfg, err := screensconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application configuration loaded successfully")

	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.InitializeSession(ctx, sessionCfg); err != nil {
		log.Fatalf("Failed to initialize session module: %v", err)
	}
	if err := container.InitializeAPI(apiCfg); err != nil {
		log.Fatalf("Failed to initialize API module: %v", err)
	}
	if err := container.InitializeScreens(screensCfg); err != nil {
		log.Fatalf("Failed to initialize screens module: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Defensa Civil Screens v1.0",
		ReadTimeout:  screensCfg.ReadTimeout,
		WriteTimeout: screensCfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			appLogger.Errorf("HTTP Error: %v", err)
			return c.Status(errors.StatusOf(err)).JSON(fiber.Map{"error": errors.MessageOf(err)})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "UNHEALTHY",
				"error":   err.Error(),
				"message": "Session backend is unavailable",
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"message":   "Defensa Civil screens gateway is running",
			"timestamp": time.Now().UTC(),
			"api":       apiCfg.BaseURL,
			"session":   sessionCfg.Backend,
		})
	})

	container.GetScreensModule().RegisterRoutes(app)
	appLogger.Info("Screen routes registered")

	serverAddr := screensCfg.Addr()
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			appLogger.Errorf("Server failed to start: %v", err)
			os.Exit(1)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}

	fmt.Println("✅ Application stopped gracefully.")
}
