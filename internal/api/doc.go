// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package api provides the HTTP interface of the event backend.

Routing uses go-chi/chi with production middleware from the chi ecosystem:
go-chi/cors for the browser UI, go-chi/httprate for per-IP rate limits and
chi's RealIP and Recoverer. Every response is JSON encoded with goccy/go-json.

Endpoints:

	GET  /health               liveness with local time and uptime
	GET  /api/events           normalized events
	GET  /api/categories       sorted unique categories
	GET  /api/audiences        audience options (?refresh=true bypasses the cache)
	POST /api/sync             clear the cache and refetch
	GET  /api/category-emojis  category to emoji lookup for current categories
	GET  /metrics              Prometheus exposition
	GET  /swagger/*            Swagger UI

Cache Headers:

Data responses carry X-Cache with one of hit, miss or fallback. Fallback
responses add an ASCII X-Cache-Warning explaining why stale data is served.

Errors:

Every error body has the shape {"error": "<code>", "message": "<German text>"}.
Upstream failures are classified at the handler boundary:

	notion.ErrNotConfigured       503 not_configured
	notion.ErrDatabaseNotFound    404 database_not_found
	rate limited, no fallback     429 rate_limited
	anything else                 500 upstream_error
*/
package api
