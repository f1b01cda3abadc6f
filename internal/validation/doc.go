// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with application
// validators and German error messages, so that invalid query parameters are
// reported in the same {"error", "message"} shape as every other API error.
//
// # Quick Start
//
//	type AudiencesQuery struct {
//	    Refresh string `query:"refresh" validate:"omitempty,flag"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    q := AudiencesQuery{Refresh: r.URL.Query().Get("refresh")}
//	    if verr := validation.ValidateStruct(&q); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
//	        return
//	    }
//	}
//
// # Field Names
//
// Error messages use the `query` struct tag when present, so a failure on
// AudiencesQuery.Refresh is reported as "refresh". Fields without a query tag
// fall back to the Go field name.
//
// # Custom Validators
//
//   - flag: a boolean query flag (true, false, 1, 0, yes, no; case-insensitive)
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
package validation
