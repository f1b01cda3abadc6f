// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package metrics provides the Prometheus collectors of the backend.

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:3001/metrics

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Cache:
  - cache_lookups_total{key, result}: result is hit, miss or stale
  - cache_evictions_total
  - cache_fallback_responses_total{resource, tier}: degraded responses by fallback tier

Notion:
  - notion_requests_total{operation, status}
  - notion_request_duration_seconds{operation}
  - notion_retries_total
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Sync monitor:
  - monitor_events{bucket}: events per time bucket at the last poll
  - monitor_runs_total{result}
  - monitor_last_success_timestamp
  - sync_requests_total{result}: administrative cache resets
*/
package metrics
