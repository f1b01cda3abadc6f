// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package models defines the data structures shared between the Notion client,
the event service and the HTTP API.

Key Components:

  - Event: normalized event record served by GET /api/events
  - HealthResponse, SyncResponse, ErrorResponse: API payloads

JSON field names are part of the public contract with the frontend and must
not change (camelCase, documentsUrls, imageUrl).
*/
package models
