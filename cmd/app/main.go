package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/BrandishReveal_Go/internal/audio"
	"github.com/osse101/BrandishReveal_Go/internal/bootstrap"
	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/handler"
	"github.com/osse101/BrandishReveal_Go/internal/scheduler"
	"github.com/osse101/BrandishReveal_Go/internal/server"
	"github.com/osse101/BrandishReveal_Go/internal/session"
	"github.com/osse101/BrandishReveal_Go/internal/sse"
	"github.com/osse101/BrandishReveal_Go/internal/worker"
)

// @title Brandish Reveal API
// @version 1.0
// @description Plays back settled case battles and spins for spectators.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		slog.Error("Reveal service exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: bus, Hub: hub}); err != nil {
		return err
	}

	src, err := bootstrap.InitializeSources(ctx, cfg)
	if err != nil {
		return err
	}

	playbackPool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize).Named("playback")
	playbackPool.Start()
	maintenancePool := worker.NewPool(1, 1).Named("maintenance")
	maintenancePool.Start()

	manager := session.NewManager(playbackPool, src.Catalog, src.Outcomes, publisher, session.Config{
		Battle:        tuning.BattleConfig(),
		FrameInterval: cfg.FrameInterval,
		TTL:           cfg.SessionTTL,
		Cues: func(d *audio.Debounced) *audio.Debounced {
			return tuning.ApplyAudio(d)
		},
	})

	sched := scheduler.New(maintenancePool)
	sched.Schedule(cfg.ReapInterval, manager.ReapJob())

	var ready []handler.Pinger
	if src.DB != nil {
		ready = append(ready, src.DB)
	}
	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		ServiceName:    cfg.ServiceName,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		Sessions: manager,
		Catalog:  src.Catalog,
		Boxes:    src.Boxes,
		Hub:      hub,
		Ready:    ready,
	})

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		Sessions:           manager,
		Pools:              []*worker.Pool{playbackPool, maintenancePool},
		Hub:                hub,
		ResilientPublisher: publisher,
		DB:                 src.DB,
	})
	return runErr
}
