// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/momentmillionaer/internal/categories"
	"github.com/tomtom215/momentmillionaer/internal/events"
	"github.com/tomtom215/momentmillionaer/internal/models"
	"github.com/tomtom215/momentmillionaer/internal/validation"
)

// localTimeLayout formats the health check's local time the German way.
const localTimeLayout = "02.01.2006, 15:04:05"

// EventService resolves the served resources.
type EventService interface {
	Events(ctx context.Context) (events.Result[[]models.Event], error)
	Categories(ctx context.Context) (events.Result[[]string], error)
	Audiences(ctx context.Context, refresh bool) events.Result[[]string]
	Sync(ctx context.Context) (int, error)
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	service   EventService
	location  *time.Location
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a handler. A nil location means UTC.
func NewHandler(service EventService, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:   service,
		location:  location,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// AudiencesQuery holds the query parameters of GET /api/audiences.
type AudiencesQuery struct {
	Refresh string `query:"refresh" validate:"omitempty,flag"`
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Returns liveness, server time in UTC and local time, the configured timezone and uptime in seconds
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthResponse "Service is running"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	writeJSON(w, r, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Message:   "Momentmillionär API läuft",
		Timestamp: now.UTC().Format(time.RFC3339),
		LocalTime: now.In(h.location).Format(localTimeLayout),
		Timezone:  h.location.String(),
		Uptime:    now.Sub(h.startTime).Seconds(),
	})
}

// Events handles event list requests
//
// @Summary List events
// @Description Returns all normalized events. Served from cache when fresh; degraded responses carry X-Cache: fallback and X-Cache-Warning
// @Tags Events
// @Produce json
// @Success 200 {array} models.Event "Events"
// @Header 200 {string} X-Cache "hit, miss or fallback"
// @Header 200 {string} X-Cache-Warning "Set on fallback responses"
// @Failure 404 {object} models.ErrorResponse "Database not found"
// @Failure 429 {object} models.ErrorResponse "Rate limited without fallback"
// @Failure 500 {object} models.ErrorResponse "Upstream error"
// @Failure 503 {object} models.ErrorResponse "Notion not configured"
// @Router /api/events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Events(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	setCacheHeaders(w, res)
	writeJSON(w, r, http.StatusOK, nonNil(res.Data))
}

// Categories handles category list requests
//
// @Summary List categories
// @Description Returns the sorted, unique categories of all events
// @Tags Events
// @Produce json
// @Success 200 {array} string "Categories"
// @Header 200 {string} X-Cache "hit, miss or fallback"
// @Failure 404 {object} models.ErrorResponse "Database not found"
// @Failure 429 {object} models.ErrorResponse "Rate limited without fallback"
// @Failure 500 {object} models.ErrorResponse "Upstream error"
// @Failure 503 {object} models.ErrorResponse "Notion not configured"
// @Router /api/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Categories(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	setCacheHeaders(w, res)
	writeJSON(w, r, http.StatusOK, nonNil(res.Data))
}

// Audiences handles audience option requests
//
// @Summary List audiences
// @Description Returns the options of the audience property. Never fails: an empty list is returned when Notion is unavailable
// @Tags Events
// @Produce json
// @Param refresh query string false "Bypass the cache (true or false)"
// @Success 200 {array} string "Audience options"
// @Failure 400 {object} models.ErrorResponse "Invalid refresh parameter"
// @Router /api/audiences [get]
func (h *Handler) Audiences(w http.ResponseWriter, r *http.Request) {
	q := AudiencesQuery{Refresh: r.URL.Query().Get("refresh")}
	if verr := validation.ValidateStruct(&q); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message)
		return
	}

	res := h.service.Audiences(r.Context(), validation.ParseFlag(q.Refresh))
	setCacheHeaders(w, res)
	writeJSON(w, r, http.StatusOK, nonNil(res.Data))
}

// Sync handles manual sync requests
//
// @Summary Trigger a sync
// @Description Clears every cache entry and refetches events from Notion
// @Tags Admin
// @Produce json
// @Success 200 {object} models.SyncResponse "Sync completed"
// @Failure 404 {object} models.SyncResponse "Database not found"
// @Failure 429 {object} models.SyncResponse "Rate limited"
// @Failure 500 {object} models.SyncResponse "Upstream error"
// @Failure 503 {object} models.SyncResponse "Notion not configured"
// @Router /api/sync [post]
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Sync(r.Context())
	if err != nil {
		e := classifyError(err)
		logServiceError(r, err, e)
		writeJSON(w, r, e.Status, models.SyncResponse{
			Success: false,
			Error:   e.Code,
			Message: e.Message,
		})
		return
	}

	writeJSON(w, r, http.StatusOK, models.SyncResponse{
		Success:    true,
		EventCount: count,
		Timestamp:  h.now().UTC().Format(time.RFC3339),
	})
}

// CategoryEmojis handles category emoji lookups
//
// @Summary Emoji per category
// @Description Returns the presentation emoji of every current category
// @Tags Events
// @Produce json
// @Success 200 {object} map[string]string "Category to emoji"
// @Failure 404 {object} models.ErrorResponse "Database not found"
// @Failure 429 {object} models.ErrorResponse "Rate limited without fallback"
// @Failure 500 {object} models.ErrorResponse "Upstream error"
// @Failure 503 {object} models.ErrorResponse "Notion not configured"
// @Router /api/category-emojis [get]
func (h *Handler) CategoryEmojis(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Categories(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	setCacheHeaders(w, res)
	writeJSON(w, r, http.StatusOK, categories.Lookup(res.Data))
}

// NotFound handles unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgNotFound)
}

// MethodNotAllowed handles known routes with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, msgMethodNotAllowed)
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
