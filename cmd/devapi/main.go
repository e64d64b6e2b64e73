package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-client/internal/config"
	devapi "github.com/your-org/storefront-client/internal/interfaces/http"
	"github.com/your-org/storefront-client/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.Infof("Starting %s dev API v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	server, err := devapi.NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create dev API server: %v", err)
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start dev API server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown dev API server gracefully: %v", err)
	}

	logger.Info("Server shutdown completed")
}
