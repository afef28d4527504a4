// Package cli provides common initialization shared by cmd/fintrack and
// cmd/fintrack-sync.
package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/remote"
	ghremote "fintrack/internal/remote/github"
	memremote "fintrack/internal/remote/memory"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// SetupLogger initializes colored structured logging at the level given
// by LOG_LEVEL (default: info) and sets it as the process default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.Config{
		Component: applog.ComponentApp,
		Handler: tint.NewHandler(os.Stderr, &tint.Options{
			Level:      levelFromEnv(),
			TimeFormat: time.Kitchen,
		}),
	})
	applog.SetDefault(logger)
	return logger
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}
	return cfg
}

// OpenRepository initializes the SQLite repository, exiting the process
// on failure.
func OpenRepository(logger *applog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to open SQLite repository", applog.FieldError, err.Error(), "path", dbPath)
		os.Exit(1)
	}
	return repo
}

// RemoteFactory selects the remote backend from configuration. The
// memory backend keeps documents in-process and is only useful for
// local experiments and tests.
func RemoteFactory(cfg *config.Config) services.RemoteFactory {
	if cfg.RemoteBackend == "memory" {
		mem := memremote.New()
		return func(context.Context, string) (remote.Store, error) {
			return mem, nil
		}
	}
	return func(ctx context.Context, credential string) (remote.Store, error) {
		return ghremote.NewGistStore(ctx, credential, cfg.GitHubAPIURL)
	}
}
