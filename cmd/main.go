/*
Package main is the entry point for the message board server.

It is responsible for loading configuration, initializing the global logging system,
selecting and opening the collection store backend, wiring the application
components, starting the HTTP server and the live feed hub, and gracefully
handling operating system interrupt signals (SIGINT, SIGTERM) to ensure a
smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"msgboard/internal/app/board"
	"msgboard/internal/app/feed"
	"msgboard/internal/app/registry"
	"msgboard/internal/app/session"
	"msgboard/internal/app/store"
	"msgboard/internal/configs"
	"msgboard/internal/handler"
	"msgboard/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("store_backend", cfg.StoreBackend).
		Str("credential_scheme", cfg.CredentialScheme).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the collection store backend
	collections, closeStore, err := openStore(cfg)
	if err != nil {
		logx.Fatal(err, "Failed to open collection store")
	}
	defer closeStore()

	verifier, err := registry.VerifierForScheme(cfg.CredentialScheme)
	if err != nil {
		logx.Fatal(err, "Failed to select credential scheme")
	}

	// Wire application components
	deps := &handler.AppDeps{
		Config:   cfg,
		Users:    registry.New(collections, verifier),
		Sessions: session.NewManager(collections, nil),
		Board:    board.New(collections),
		Feed:     feed.NewHub(),
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Message board server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	deps.Feed.Shutdown()

	logx.Info("Server gracefully stopped.")
}

// openStore opens the configured collection store backend and returns it along
// with the function that releases its resources.
func openStore(cfg *configs.AppConfig) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case configs.StoreBackendFile:
		s, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case configs.StoreBackendPostgres:
		s, err := store.NewPostgresStore(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case configs.StoreBackendS3:
		s, err := store.NewS3Store(store.S3Config{
			BucketName:      cfg.S3BucketName,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
