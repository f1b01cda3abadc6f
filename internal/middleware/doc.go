// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking, wired into the logging context
  - Prometheus Metrics: HTTP request/response instrumentation

Both are plain func(http.Handler) http.Handler values so they compose with
chi's router.Use and route groups:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Group(func(r chi.Router) {
	    r.Use(middleware.Prometheus)
	    r.Get("/api/events", h.Events)
	})

Metrics Labels:

The endpoint label uses the matched chi route pattern ("/swagger/*") rather
than the raw URL path, keeping label cardinality bounded. Requests that do
not match a route are recorded as "unmatched".
*/
package middleware
