// Package cli provides common initialization shared by cmd/thuchi and
// cmd/thuchi-worker.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"thuchi/internal/config"
	"thuchi/internal/storage"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// ConnectMongo dials MongoDB and pings it. A failing store at startup is
// fatal; the process exits rather than limping along.
func ConnectMongo(ctx context.Context, logger *slog.Logger, cfg *config.Config) *storage.Mongo {
	store, err := storage.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err, "database", cfg.MongoDatabase)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB", "database", cfg.MongoDatabase)
	return store
}

// SignalContext returns a context cancelled on SIGINT/SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
