package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/futball/internal/app"
	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/observability"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		return err
	}
	defer flush(logger, "telemetry", func() error {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return telemetry.Shutdown(flushCtx)
	})

	repos, err := app.OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer flush(logger, "record store", repos.Close)

	srv, err := app.NewHTTPServer(cfg, app.NewServices(repos, cfg, logger), logger)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "backend", repos.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("http server stopped")
	return nil
}

func flush(logger *logging.Logger, what string, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn("shutdown step failed", "component", what, "error", err)
	}
}
