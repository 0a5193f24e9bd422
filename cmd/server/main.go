package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"notes-api/internal/config"
	"notes-api/internal/logging"
	"notes-api/internal/server"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	// Загружаем конфигурацию, путь можно переопределить через CONFIG_FILE
	configFile := config.FileFromEnv()
	appConfig, err := config.Load(configFile)
	if err != nil {
		logging.New(os.Stderr, "error", "text").Error(context.Background(), "failed to load config", "file", configFile, "error", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, appConfig.Logger.Level, appConfig.Logger.Format)
	ctx := context.Background()

	srv := server.NewServer(appConfig, log)
	if err := srv.Initialize(ctx); err != nil {
		log.Error(ctx, "failed to initialize server", "error", err)
		os.Exit(1)
	}

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := srv.Start()

	exitCode := 0
	select {
	case err := <-errChan:
		log.Error(ctx, "server error", "error", err)
		exitCode = 1
	case sig := <-sigChan:
		log.Info(ctx, "received signal", "signal", sig.String())
	}

	if err := srv.Shutdown(); err != nil {
		log.Error(ctx, "shutdown error", "error", err)
		exitCode = 1
	}

	log.Info(ctx, "notes service stopped")
	os.Exit(exitCode)
}
