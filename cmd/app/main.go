package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agridesk/fieldbook/internal/alert"
	"github.com/agridesk/fieldbook/internal/bootstrap"
	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/config"
	"github.com/agridesk/fieldbook/internal/connectivity"
	"github.com/agridesk/fieldbook/internal/dashboard"
	"github.com/agridesk/fieldbook/internal/database"
	"github.com/agridesk/fieldbook/internal/handler"
	"github.com/agridesk/fieldbook/internal/records"
	"github.com/agridesk/fieldbook/internal/scheduler"
	"github.com/agridesk/fieldbook/internal/server"
	"github.com/agridesk/fieldbook/internal/stock"
	syncpkg "github.com/agridesk/fieldbook/internal/sync"
	"github.com/agridesk/fieldbook/internal/usage"
	"github.com/agridesk/fieldbook/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	handler.InitValidator()

	// Local store
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(db)

	// Event system
	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	// Services publish through the resilient publisher, so a failing
	// listener retries in the background instead of surfacing to a
	// mutation.
	clk := clock.System()
	transport := syncpkg.NewHTTPTransport(cfg.SyncAPIURL, nil)
	syncService := syncpkg.NewService(repos.SyncQueue, repos.Records, transport, publisher, clk, cfg.SyncMaxRetries)
	stockService := stock.NewService(repos.Inventory, syncService, publisher, clk)
	alertService := alert.NewService(repos.Alerts, repos.Crops, repos.Inventory, stockService, publisher, clk)
	usageService := usage.NewService(repos.Usage, stockService, alertService, syncService, clk)
	dashboardService := dashboard.NewService(repos.Crops, repos.Expenses, repos.Usage, repos.Alerts, stockService, syncService, clk)
	recordsService := records.NewService(repos.Crops, repos.Expenses, syncService, clk)

	// Background workers
	pool := worker.NewPool(4, 64)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.SyncInterval, worker.DrainJob{
		Run: func(ctx context.Context) error {
			_, err := syncService.Drain(ctx, "")
			return err
		},
	})
	sched.Schedule(cfg.AlertSweepInterval, worker.SweepJob{
		Farms: repos.Farms,
		Check: func(ctx context.Context, farmID string) error {
			_, err := alertService.CheckAllAlerts(ctx, farmID)
			return err
		},
	})
	sched.Start()

	// Connectivity monitor flips the sync engine online after the first
	// successful probe against the authority's health endpoint.
	prober := connectivity.NewHTTPProber(cfg.SyncAPIURL, &http.Client{Timeout: 5 * time.Second})
	monitor := connectivity.NewMonitor(prober, syncService, cfg.ProbeInterval)

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	defer cancelMonitor()
	go monitor.Start(monitorCtx)

	srv := server.NewServer(cfg.Port, db, server.Services{
		Stock:     stockService,
		Usage:     usageService,
		Alerts:    alertService,
		Sync:      syncService,
		Dashboard: dashboardService,
		Records:   recordsService,
		Farms:     repos.Farms,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:    srv,
		Monitor:   monitor,
		Scheduler: sched,
		Pool:      pool,
		Publisher: publisher,
		DB:        db,
	})
}
