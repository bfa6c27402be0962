package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishReveal_Go/internal/event"
	"github.com/osse101/BrandishReveal_Go/internal/scheduler"
	"github.com/osse101/BrandishReveal_Go/internal/server"
	"github.com/osse101/BrandishReveal_Go/internal/session"
	"github.com/osse101/BrandishReveal_Go/internal/sse"
	"github.com/osse101/BrandishReveal_Go/internal/worker"
)

// ShutdownComponents holds everything that needs graceful shutdown. Nil
// fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Sessions           *session.Manager
	Pools              []*worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	DB                 *pgxpool.Pool
}

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and playback sessions, then the worker pools
// 3. Spectator streams
// 4. Event publisher (dead-letter whatever is still pending)
// 5. Database
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	slog.Info(LogMsgShuttingDownSessions)
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	for _, p := range c.Pools {
		if p != nil {
			p.Stop()
		}
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	slog.Info(LogMsgServerStopped)
}
