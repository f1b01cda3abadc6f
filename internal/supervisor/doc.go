// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package supervisor provides process supervision using suture v4.

The supervisor tree manages every long-running service of the backend with
Erlang/OTP-style restarts and graceful shutdown:

	RootSupervisor ("momentmillionaer")
	├── CacheSupervisor ("cache-layer")
	│   └── SweeperService       (removes long-expired cache entries)
	├── SyncSupervisor ("sync-layer")
	│   └── MonitorService       (if sync.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts independently, so a monitor stuck in upstream failures
does not affect request serving.

# Usage Example

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddCacheService(services.NewRunnerService("cache-sweeper", sweeper))
	tree.AddSyncService(services.NewMonitorService(monitor))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped with error")
	}

# Logging

Supervisor events (service start, failure, backoff, restart) are logged
through the sutureslog adapter onto the zerolog-backed slog.Logger.
*/
package supervisor
