// Command fintrack-sync runs a one-shot push or pull against the
// configured remote document, useful from cron or before restoring a
// machine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"fintrack/internal/cli"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

func main() {
	direction := flag.String("direction", "push", "sync direction: push or pull")
	timeout := flag.Duration("timeout", 30*time.Second, "operation timeout")
	flag.Parse()

	if *direction != "push" && *direction != "pull" {
		fmt.Fprintf(os.Stderr, "invalid direction %q: must be push or pull\n", *direction)
		os.Exit(2)
	}

	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.OpenRepository(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	st := store.New()
	syncSvc := services.NewSyncService(st, repo, cli.RemoteFactory(cfg), cfg.SyncDebounce, logger)
	tracker := services.NewTracker(st, repo, syncSvc, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *direction {
	case "pull":
		// Startup already pulls the remote copy and persists it through
		// the store hooks.
		if err := tracker.Startup(ctx); err != nil {
			logger.Error("Pull failed", applog.FieldError, err.Error())
			os.Exit(1)
		}
		if !syncSvc.Enabled() {
			logger.Error("Sync is not connected")
			os.Exit(1)
		}
		logger.Info("Pull complete", applog.FieldCount, len(tracker.All()))
	case "push":
		if err := tracker.StartupLocal(ctx); err != nil {
			logger.Error("Load failed", applog.FieldError, err.Error())
			os.Exit(1)
		}
		if !syncSvc.Enabled() {
			logger.Error("Sync is not connected")
			os.Exit(1)
		}
		if err := syncSvc.PushNow(ctx); err != nil {
			logger.Error("Push failed", applog.FieldError, err.Error())
			os.Exit(1)
		}
		logger.Info("Push complete", applog.FieldCount, len(tracker.All()))
	}
}
