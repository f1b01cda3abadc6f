// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotConfigured is returned when the integration secret or the page
	// reference is missing.
	ErrNotConfigured = errors.New("notion: credentials not configured")

	// ErrDatabaseNotFound is returned when no database matches the configured name.
	ErrDatabaseNotFound = errors.New("notion: database not found")
)

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion: HTTP %d (%s): %s", e.Status, e.Code, e.Message)
}

// IsRateLimited reports whether err is, or wraps, an HTTP 429 APIError.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests
}
