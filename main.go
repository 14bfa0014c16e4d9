package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clicky-block/internal/aggregator"
	"github.com/mauv0809/clicky-block/internal/config"
	"github.com/mauv0809/clicky-block/internal/game"
	server "github.com/mauv0809/clicky-block/internal/http"
	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/namer"
	"github.com/mauv0809/clicky-block/internal/team"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %s", err)
		}
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	namerClient := namer.NewClient(cfg.Namer.AccountID, cfg.Namer.APIToken)

	teams := team.NewManager(cfg.DataDir, metricsSvc)
	defer func() {
		log.Info("Closing team databases")
		teams.Close()
	}()

	games := game.NewManager(cfg.DataDir, cfg.Turso, teams, namerClient, metricsSvc, cfg.Namer.Moderation)
	defer func() {
		log.Info("Closing game databases")
		games.Close()
	}()

	// Every game entity gets its own reconciliation loop, stopped together
	// on shutdown via the root context.
	rootCtx, stopAggregators := context.WithCancel(context.Background())
	defer stopAggregators()
	games.OnCreate = func(g *game.Game) {
		go aggregator.Run(rootCtx, g, cfg.Aggregate.Interval, metricsSvc)
	}

	if _, err := games.Get(cfg.CurrentGame); err != nil {
		log.Fatalf("Failed to open game %q: %s", cfg.CurrentGame, err)
	}

	s := server.NewServer(
		games,
		teams,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "game", cfg.CurrentGame)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		stopAggregators()

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
