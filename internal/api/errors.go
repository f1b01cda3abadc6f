// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/notion"
)

// German messages shown to end users, one per error class.
const (
	msgNotConfigured    = "Die Verbindung zu Notion ist nicht eingerichtet. Bitte NOTION_TOKEN und NOTION_PAGE_URL konfigurieren."
	msgDatabaseNotFound = "Die Veranstaltungsdatenbank wurde in Notion nicht gefunden. Bitte die Freigabe der Seite prüfen."
	msgRateLimited      = "Notion ist gerade ausgelastet und es liegen keine zwischengespeicherten Daten vor. Bitte in einigen Minuten erneut versuchen."
	msgUpstream         = "Die Veranstaltungen konnten nicht geladen werden. Bitte später erneut versuchen."
	msgTooManyRequests  = "Zu viele Anfragen. Bitte kurz warten und erneut versuchen."
	msgNotFound         = "Diese Adresse gibt es nicht."
	msgMethodNotAllowed = "Diese Methode ist für diese Adresse nicht erlaubt."
)

// apiError is a classified upstream failure.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// classifyError maps a service error to its HTTP status, code and message.
func classifyError(err error) apiError {
	switch {
	case errors.Is(err, notion.ErrNotConfigured):
		return apiError{http.StatusServiceUnavailable, ErrCodeNotConfigured, msgNotConfigured}
	case errors.Is(err, notion.ErrDatabaseNotFound):
		return apiError{http.StatusNotFound, ErrCodeDatabaseNotFound, msgDatabaseNotFound}
	case notion.IsRateLimited(err):
		return apiError{http.StatusTooManyRequests, ErrCodeRateLimited, msgRateLimited}
	default:
		return apiError{http.StatusInternalServerError, ErrCodeUpstream, msgUpstream}
	}
}

// respondServiceError classifies err, logs it and writes the error body.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	e := classifyError(err)
	logServiceError(r, err, e)
	respondError(w, r, e.Status, e.Code, e.Message)
}

func logServiceError(r *http.Request, err error, e apiError) {
	log := logging.Ctx(r.Context())
	switch {
	case errors.Is(err, context.Canceled):
		log.Debug().Err(err).Msg("Request canceled by client")
	case e.Status >= http.StatusInternalServerError && e.Code != ErrCodeNotConfigured:
		log.Error().Err(err).Str("code", e.Code).Msg("API error")
	default:
		log.Warn().Err(err).Str("code", e.Code).Msg("API error")
	}
}
