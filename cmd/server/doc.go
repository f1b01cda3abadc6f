// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package main is the entry point for the Momentmillionär server.

The server reads events from a Notion database, normalizes them and serves
them as JSON behind a two-tier cache so the web UI keeps working while
Notion is slow, rate limited or down.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("momentmillionaer")
	├── CacheSupervisor ("cache-layer")
	│   └── cache-sweeper (evicts long-expired entries)
	├── SyncSupervisor ("sync-layer")
	│   └── sync-monitor (optional, SYNC_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON/console output modes
 3. Cache: memory (go-cache), Redis or NATS key-value store
 4. Notion client: rate paced, retried and wrapped in a circuit breaker
 5. Event service: cache tiers, fallback chain and single-flight fetches
 6. HTTP Server: Chi router with CORS, rate limits, metrics and Swagger UI

# Configuration

Required for serving events:
  - NOTION_TOKEN: integration token
  - NOTION_PAGE_URL: page that contains the events database

Without them the server still starts, logs a warning and answers every
event endpoint with 503 not_configured.

Optional:
  - NOTION_DATABASE_ID: skip database discovery
  - CACHE_DRIVER: memory (default), redis or nats
  - SYNC_ENABLED: poll Notion periodically and log drift

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests within the shutdown timeout, then
the cache store connection is closed.

# Example Usage

	export NOTION_TOKEN=secret_xxx
	export NOTION_PAGE_URL=https://www.notion.so/Momente-0123456789abcdef0123456789abcdef
	./momentmillionaer
*/
package main
