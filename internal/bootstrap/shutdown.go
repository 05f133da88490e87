package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/agridesk/fieldbook/internal/connectivity"
	"github.com/agridesk/fieldbook/internal/event"
	"github.com/agridesk/fieldbook/internal/scheduler"
	"github.com/agridesk/fieldbook/internal/server"
	"github.com/agridesk/fieldbook/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Monitor   *connectivity.Monitor
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Publisher *event.ResilientPublisher
	DB        *sql.DB
}

// GracefulShutdown performs graceful shutdown of all application
// components, in order:
// 1. HTTP server (stop accepting new requests)
// 2. Connectivity monitor (no more online transitions)
// 3. Scheduler (no new periodic jobs)
// 4. Worker pool (finish in-flight jobs)
// 5. Event publisher (dead-letter any in-flight retries)
// 6. Database handle
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Monitor != nil {
		components.Monitor.Stop()
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.Pool != nil {
		components.Pool.Stop()
	}

	if components.Publisher != nil {
		if err := components.Publisher.Close(); err != nil {
			slog.Error(LogMsgPublisherCloseFailed, "error", err)
		}
	}

	if components.DB != nil {
		if err := components.DB.Close(); err != nil {
			slog.Error(LogMsgDatabaseCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
