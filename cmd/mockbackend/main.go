package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"civil-defense-app/internal/mockbackend"
	"civil-defense-app/internal/mockbackend/config"
	"civil-defense-app/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load mock backend configuration: %v", err)
	}

	appLogger := logger.NewLogger()
	module, err := mockbackend.NewMockBackendModule(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize mock backend: %v", err)
	}

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- module.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			log.Fatalf("Mock backend failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)
		if err := module.Stop(); err != nil {
			appLogger.Errorf("Mock backend forced to shutdown: %v", err)
		}
	}

	fmt.Println("✅ Mock backend stopped.")
}
