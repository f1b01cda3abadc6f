// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

// Momentmillionär API serves the events of a Notion database to the
// Momentmillionär web UI.
//
// @title Momentmillionär API
// @version 1.0
// @description Event discovery backend reading a Notion database
// @description
// @description ## Caching
// @description
// @description Responses are cached for 30 minutes with a 24 hour backup copy.
// @description When Notion fails or rate limits, cached data is served with
// @description `X-Cache: fallback` and a German `X-Cache-Warning` header.
// @description Every data response carries `X-Cache: hit`, `miss` or `fallback`.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description `POST /api/sync` is limited to 10 requests per minute.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "error": "not_configured",
// @description   "message": "Die Verbindung zu Notion ist nicht eingerichtet."
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/momentmillionaer/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3001
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Health checks
//
// @tag.name Events
// @tag.description Events, categories and audiences read from Notion
//
// @tag.name Admin
// @tag.description Manual cache invalidation and resync
package main
