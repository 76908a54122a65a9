package main

import (
	"context"

	"wildberries/parser/internal/config"
	"wildberries/parser/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := setupLogging(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	log.Info("Starting Wildberries parser...")

	ctx := context.Background()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	result, err := app.Run(ctx)
	app.Close()
	if err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	log.Infof("Application finished successfully: %d products from %s", len(result.Rows), result.Category.URL)
}

func setupLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
