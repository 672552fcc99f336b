package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsletter/internal/api/router"
	"newsletter/internal/config"
	"newsletter/internal/logger"
	"newsletter/internal/storage/postgres"

	"github.com/joho/godotenv"
)

const serviceName = "newsletter"

func main() {
	// 1. Load configuration
	envErr := godotenv.Load()

	cfg, err := config.Load("configuration")
	if err != nil {
		log := logger.New(serviceName, "info", os.Stdout)
		log.Fatal().Err(err).Msg("Failed to read configuration")
	}

	log := logger.New(serviceName, cfg.Log.Level, os.Stdout)
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	if err := config.ResolvePasswordFromSecretManager(context.Background(), &cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve database password")
	}

	// 2. Build storage backend (lazy, nothing is dialed yet)
	var connector postgres.Connector
	backend, err := connector.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}

	// 3. Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Application.Address(),
		Handler:      router.New(cfg.Application, backend, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Start server in a goroutine
	go func() {
		log.Info().Str("address", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	backend.Close()
	log.Info().Msg("Server shut down gracefully")
}
