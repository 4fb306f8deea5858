// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/kinograph/docs" // Import generated swagger docs
	"github.com/tomtom215/kinograph/internal/api"
	"github.com/tomtom215/kinograph/internal/cache"
	"github.com/tomtom215/kinograph/internal/catalog"
	"github.com/tomtom215/kinograph/internal/config"
	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/metadata"
	"github.com/tomtom215/kinograph/internal/recommend"
	"github.com/tomtom215/kinograph/internal/supervisor"
	"github.com/tomtom215/kinograph/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Kinograph with supervisor tree")
	logging.Info().
		Str("tmdb_base_url", cfg.TMDB.BaseURL).
		Bool("breaker_enabled", cfg.TMDB.BreakerEnabled).
		Bool("recommend_enabled", cfg.Recommend.Enabled).
		Str("environment", cfg.Server.Environment).
		Msg("Configuration loaded")

	watchLogLevel()

	// Initialize TMDB client, optionally wrapped in a circuit breaker.
	// The breaker prevents cascading failures when the upstream is down:
	// requests fail fast instead of tying up goroutines on timeouts.
	baseClient := metadata.NewTMDBClient(&cfg.TMDB)
	var client metadata.TMDBClientInterface = baseClient
	var breaker *metadata.CircuitBreakerClient
	if cfg.TMDB.BreakerEnabled {
		breaker = metadata.NewCircuitBreakerClient(baseClient)
		client = breaker
		logging.Info().Msg("Circuit breaker enabled for upstream requests")
	}

	if err := client.Ping(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Failed to reach TMDB (will retry on demand)")
	} else {
		logging.Info().Msg("Connected to TMDB successfully")
	}

	// Catalog service with response cache
	respCache := cache.New("catalog", cfg.API.CacheTTL, cfg.API.CacheMaxEntries)
	catalogSvc := catalog.NewService(client, respCache, cfg.Recommend.CorpusPages)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Initialize recommendation engine and training service (if enabled)
	var engine *recommend.Engine
	if components := initRecommend(cfg, catalogSvc, tree); components != nil {
		engine = components.Engine
	}

	handler := api.NewHandler(catalogSvc, engine, client, breaker, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// watchLogLevel reloads the logging level when the config file changes.
// Only the log level is applied live; everything else keeps requiring a
// restart since clients and the supervisor tree are built from the
// startup snapshot.
func watchLogLevel() {
	path := config.ConfigFilePath()
	if path == "" {
		return
	}

	err := config.WatchConfigFile(path, func() {
		newCfg, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Msg("Config reload failed, keeping current settings")
			return
		}
		logging.SetLevelString(newCfg.Logging.Level)
		logging.Info().Str("level", newCfg.Logging.Level).Msg("Log level reloaded from config file")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
		return
	}
	logging.Info().Str("path", path).Msg("Watching config file for log level changes")
}
