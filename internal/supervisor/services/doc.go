// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package services provides suture.Service wrappers for backend components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe to Serve

Monitor (MonitorService):
  - Wraps the upstream monitor's Start/Stop lifecycle

Runner (RunnerService):
  - Wraps components that already block in Run(ctx) error, such as the
    cache sweeper, and names them for supervisor logs

All wrappers implement fmt.Stringer so suture logs identify them by name.
*/
package services
