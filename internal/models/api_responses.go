// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package models

// HealthResponse is returned by GET /health.
//
// Example:
//
//	{
//	  "status": "ok",
//	  "message": "Momentmillionär API läuft",
//	  "timestamp": "2025-01-12T08:00:00Z",
//	  "localTime": "12.01.2025, 09:00:00",
//	  "timezone": "Europe/Berlin",
//	  "uptime": 3600.5
//	}
type HealthResponse struct {
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	LocalTime string  `json:"localTime"`
	Timezone  string  `json:"timezone"`
	Uptime    float64 `json:"uptime"`
}

// SyncResponse is returned by POST /api/sync.
// On success EventCount is set; on failure Error and Message are.
type SyncResponse struct {
	Success    bool   `json:"success"`
	EventCount int    `json:"eventCount"`
	Timestamp  string `json:"timestamp,omitempty"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
