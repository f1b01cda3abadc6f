// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/momentmillionaer/docs" // Import generated swagger docs
	"github.com/tomtom215/momentmillionaer/internal/api"
	"github.com/tomtom215/momentmillionaer/internal/cache"
	"github.com/tomtom215/momentmillionaer/internal/config"
	"github.com/tomtom215/momentmillionaer/internal/events"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/metrics"
	"github.com/tomtom215/momentmillionaer/internal/notion"
	"github.com/tomtom215/momentmillionaer/internal/supervisor"
	"github.com/tomtom215/momentmillionaer/internal/supervisor/services"
	"github.com/tomtom215/momentmillionaer/internal/sync"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("cache_driver", cfg.Cache.Driver).
		Str("timezone", cfg.Server.Timezone).
		Msg("Starting Momentmillionär with supervisor tree")

	if !cfg.Notion.Configured() {
		logging.Warn().Msg("NOTION_TOKEN or NOTION_PAGE_URL missing; event endpoints will answer 503 until configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := cache.NewStore(ctx, cache.StoreConfig{
		Driver:        cache.Driver(cfg.Cache.Driver),
		Prefix:        cfg.Cache.Prefix,
		Retention:     cfg.Cache.StaleRetention,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		NATSURL:       cfg.Cache.NATSURL,
		NATSBucket:    cfg.Cache.NATSBucket,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize cache store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache store")
		}
	}()
	responseCache := cache.New(store)
	logging.Info().Str("driver", string(store.Driver())).Msg("Cache initialized")

	loc := cfg.Server.Location()
	client := notion.NewCircuitBreakerClient(&cfg.Notion)
	classifier := notion.NewClassifier(cfg.Notion.TrustedImageHosts)
	normalizer := notion.NewNormalizer(classifier, cfg.Notion.AudienceProperty, loc)

	service := events.NewService(responseCache, client, normalizer, events.Config{
		TTL:              cfg.Cache.TTL,
		BackupTTL:        cfg.Cache.BackupTTL,
		AudienceProperty: cfg.Notion.AudienceProperty,
	})

	handler := api.NewHandler(service, loc)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	sweeper := sync.NewSweeper(responseCache, cfg.Cache.SweepInterval, cfg.Cache.StaleRetention)
	tree.AddCacheService(services.NewRunnerService("cache-sweeper", sweeper))

	if cfg.Sync.Enabled {
		monitor := sync.NewMonitor(client, normalizer, cfg.Sync.Interval, loc)
		tree.AddSyncService(services.NewMonitorService(monitor))
		logging.Info().Dur("interval", cfg.Sync.Interval).Msg("Sync monitor added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, treeConfig.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly once and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
		cancel()
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Unstopped service")
		}
	}

	logging.Info().Msg("Server stopped")
}
