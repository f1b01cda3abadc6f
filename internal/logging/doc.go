// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

// Package logging provides the zerolog-based structured logger used by every
// component of the Momentmillionär backend.
//
// # Overview
//
// The package keeps a single global zerolog.Logger that is configured once at
// startup and read from many goroutines:
//   - JSON output for production, console output for local development
//   - request and correlation IDs propagated through context.Context
//   - an slog.Handler adapter so suture (via sutureslog) logs through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Serving fallback events")
//
// # Configuration
//
// Environment variables are mapped by the config package:
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  true, false (default: false)
//
// Always terminate an event chain with Msg or Send, otherwise nothing is
// written.
package logging
