package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/agridesk/fieldbook/internal/authority"
	"github.com/agridesk/fieldbook/internal/bootstrap"
	"github.com/agridesk/fieldbook/internal/config"
	"github.com/agridesk/fieldbook/internal/database"
)

const (
	shutdownTimeout = 10 * time.Second

	poolMaxConns = 10
	poolMaxIdle  = 5 * time.Minute
	poolMaxLife  = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	pool, err := database.NewPgxPool(cfg.GetDBConnString(), poolMaxConns, poolMaxIdle, poolMaxLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := authority.EnsureSchema(ctx, pool); err != nil {
		slog.Error("Failed to ensure schema", "error", err)
		os.Exit(1)
	}

	store := authority.NewStore(pool)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.AuthorityPort),
		Handler:           authority.NewRouter(store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Authority server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Authority server failed", "error", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Authority server forced to shutdown", "error", err)
	}

	slog.Info("Authority server stopped")
}
