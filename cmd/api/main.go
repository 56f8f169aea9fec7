package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riboflavin-backend/application/services"
	domaincfg "riboflavin-backend/domain/config"
	"riboflavin-backend/domain/transcript"
	"riboflavin-backend/infrastructure/config"
	"riboflavin-backend/infrastructure/persistence/filestore"
	"riboflavin-backend/interfaces/http/rest"
	pkgerrors "riboflavin-backend/pkg/errors"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store, err := filestore.New(cfg.RawDataDir, cfg.ParsedDataDir)
	if err != nil {
		logger.Fatal("Failed to initialize document store", zap.Error(err))
	}

	layoutCfg := domaincfg.DefaultLayoutConfig()
	layoutCfg.DefaultViewportWidth = cfg.ViewportWidth
	service := services.NewGraphService(layoutCfg, logger)

	// Warm the graph from the last parsed snapshot when one exists.
	var doc transcript.Document
	switch err := store.ReadJSON(filestore.LatestParsedName, &doc); {
	case err == nil:
		service.IngestDocument(doc, cfg.ViewportWidth)
		logger.Info("graph restored from last parsed snapshot")
	case pkgerrors.IsNotFound(err):
		logger.Info("no parsed snapshot found, starting with an empty graph")
	default:
		logger.Warn("could not restore parsed snapshot", zap.Error(err))
	}

	router := rest.NewRouter(service, store, cfg, logger)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}

// newLogger builds the zap logger for the configured environment
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
