package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"newsletter/internal/config"
	"newsletter/internal/logger"
	"newsletter/internal/migrate"
	"newsletter/internal/storage/postgres"
	"newsletter/migrations"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "configuration", "Directory holding base.yaml and <environment>.yaml")
	createDB := flag.Bool("create-db", true, "Create the target database when it does not exist")
	flag.Parse()

	// Initialize logger
	log := logger.New("newsletter-migrate", "info", os.Stdout)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	// Load config
	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.ResolvePasswordFromSecretManager(ctx, &cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve database password")
	}

	if *createDB {
		opts, err := postgres.ConnectOptions(cfg.Database, false)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build connection options")
		}
		admin := stdlib.OpenDB(*opts)
		created, err := migrate.EnsureDatabase(ctx, admin, cfg.Database.DatabaseName)
		admin.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create database")
		}
		if created {
			log.Info().Str("database", cfg.Database.DatabaseName).Msg("Created database")
		}
	}

	pool, err := postgres.NewPool(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool.Raw())
	defer db.Close()

	ms, err := migrate.Load(migrations.Files)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load migrations")
	}

	applied, err := migrate.NewRunner(db, log).Up(ctx, ms)
	if err != nil {
		log.Error().Err(err).Int("applied", applied).Msg("Migration failed")
		db.Close()
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("applied", applied).Int("total", len(ms)).Msg("Migrations complete")
}
