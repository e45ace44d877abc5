package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snaplink-hq/paybridge/pkg/bridging"
	"github.com/snaplink-hq/paybridge/pkg/config"
	"github.com/snaplink-hq/paybridge/pkg/logger"
	"github.com/snaplink-hq/paybridge/pkg/partner"
	"github.com/snaplink-hq/paybridge/pkg/server"
	"github.com/snaplink-hq/paybridge/pkg/store"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	stdLogger := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)

	// Postgres when a DSN is configured, otherwise in-memory
	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to store: %v", err)
		}
		st = pg
		stdLogger.Info("Using Postgres intent store")
	} else {
		st = store.NewMemoryStore()
		stdLogger.Notice("DATABASE_URL not set, using in-memory intent store")
	}

	client := partner.NewClient(cfg.PartnerEndpoint, cfg.PartnerTimeout, stdLogger)
	svc := bridging.NewService(st, client, cfg.MetadataTTL, cfg.QuoteExpiry, stdLogger)
	srv := server.New(cfg.ListenPort, svc, stdLogger)

	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		stdLogger.Info("Received termination signal, shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			stdLogger.Error("Shutdown error: %v", err)
		}
	}()

	stdLogger.Info("Starting the bridging service...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
