// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/momentmillionaer/internal/events"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/models"
)

// Error codes for API responses
const (
	ErrCodeNotConfigured    = "not_configured"
	ErrCodeDatabaseNotFound = "database_not_found"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeUpstream         = "upstream_error"
	ErrCodeTooManyRequests  = "too_many_requests"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// Cache header names
const (
	HeaderCache        = "X-Cache"
	HeaderCacheWarning = "X-Cache-Warning"
)

// Header values must stay ASCII; net/http does not encode them.
const (
	warningRateLimited = "Notion-Ratenlimit erreicht, zwischengespeicherte Daten werden angezeigt"
	warningUnavailable = "Notion nicht erreichbar, zwischengespeicherte Daten werden angezeigt"
)

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"upstream_error","message":"Interner Fehler"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the standard error body.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, models.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// setCacheHeaders sets X-Cache and, for degraded data, X-Cache-Warning.
func setCacheHeaders[T any](w http.ResponseWriter, res events.Result[T]) {
	w.Header().Set(HeaderCache, string(res.Status()))
	if !res.Fallback {
		return
	}
	if res.RateLimited {
		w.Header().Set(HeaderCacheWarning, warningRateLimited)
		return
	}
	w.Header().Set(HeaderCacheWarning, warningUnavailable)
}
