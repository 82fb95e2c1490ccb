package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apiconfig "civil-defense-app/internal/api/config"
	"civil-defense-app/internal/cli"
	"civil-defense-app/internal/di"
	sessionconfig "civil-defense-app/internal/session/config"
	"civil-defense-app/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	appLogger := logger.NewLoggerWithConfig(level, os.Getenv("LOG_FORMAT"))

	factory := func(ctx context.Context) (*cli.App, func() error, error) {
		sessionCfg, err := sessionconfig.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		apiCfg, err := apiconfig.LoadConfig()
		if err != nil {
			return nil, nil, err
		}

		container := di.NewContainer(appLogger)
		if err := container.InitializeSession(ctx, sessionCfg); err != nil {
			return nil, nil, err
		}
		if err := container.InitializeAPI(apiCfg); err != nil {
			container.Close()
			return nil, nil, err
		}

		sessions := container.GetSessionModule()
		return &cli.App{
			Client: container.GetAPIModule().GetClient(),
			Store:  sessions.GetStore(),
			Guard:  sessions.GetGuard(),
		}, container.Close, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if msg, err := cli.Execute(ctx, cli.NewRootCmd(factory)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", msg)
		stop()
		os.Exit(1)
	}
}
