// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package config loads and validates the backend configuration.

# Configuration Sources

Values are layered with Koanf v2, later layers winning:
  - built-in defaults (defaultConfig)
  - an optional YAML file (CONFIG_PATH, config.yaml, /etc/momentmillionaer/config.yaml)
  - environment variables, mapped explicitly in envTransformFunc

# Notion Credentials

NOTION_TOKEN and NOTION_PAGE_URL are not enforced by Validate. A server
started without them stays up and answers the event endpoints with 503 so
that a misconfigured deployment is visible instead of crash-looping. The
operator CLI (momentctl check) treats missing credentials as fatal.

# Environment Variables

Server:
  - HTTP_PORT / PORT: listen port (default: 3001)
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - TZ_NAME: timezone used for /health localTime and monitor buckets (default: Europe/Berlin)

Notion:
  - NOTION_TOKEN, NOTION_PAGE_URL (required for serving events)
  - NOTION_DATABASE_ID: skip database discovery
  - NOTION_DATABASE_NAME: substring matched against database titles (default: Veranstaltungen)

Cache:
  - CACHE_DRIVER: memory, redis or nats (default: memory)
  - CACHE_TTL / CACHE_BACKUP_TTL: primary and backup freshness (default: 30m / 24h)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
