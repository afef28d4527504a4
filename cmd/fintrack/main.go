package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.OpenRepository(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	st := store.New()
	syncSvc := services.NewSyncService(st, repo, cli.RemoteFactory(cfg), cfg.SyncDebounce, logger)
	tracker := services.NewTracker(st, repo, syncSvc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tracker.Startup(ctx); err != nil {
		logger.Error("Startup failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, tracker, logger)
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.RemoteBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Flush any pending push before the process goes away.
		syncSvc.Stop()
		if syncSvc.Enabled() {
			if err := syncSvc.PushNow(shutdownCtx); err != nil {
				logger.Warn("Final push failed", applog.FieldError, err.Error())
			}
		}

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
