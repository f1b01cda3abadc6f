// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package notion is the upstream data client for the events database.

It talks to the public Notion REST API with an integration secret and turns
database pages into normalized models.Event records.

Client Features:
  - Database discovery by name below the configured page, with a search
    endpoint fallback
  - Cursor pagination for database queries (all-or-nothing)
  - Client-side request pacing with golang.org/x/time/rate
  - HTTP 429 handling with exponential backoff and Retry-After support
  - Circuit breaker protection via sony/gobreaker (CircuitBreakerClient)

Normalization:
  - Properties are resolved by candidate names, German first
  - Price text is reduced to a numeric string, "0" meaning free
  - File attachments are classified into one image and a document list

Parsing never fails a request. Values that cannot be interpreted resolve to
their zero defaults.

Errors:
  - ErrNotConfigured: token or page URL missing
  - ErrDatabaseNotFound: no database matched the configured name
  - *APIError: non-2xx response; IsRateLimited reports HTTP 429
*/
package notion
