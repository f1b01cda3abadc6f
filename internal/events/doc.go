// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package events resolves events, categories and audiences for the API.

Every resource is served cache-first. On a miss the upstream is queried and
the result is written twice: to the primary key with the short TTL and to
"<key>-backup" with the long TTL. When the upstream fails the service
degrades through a fallback chain:

	stale primary -> fresh backup -> stale backup -> error

Results served from the chain are flagged so the API can warn the client.
Concurrent misses for the same key share one upstream fetch
(golang.org/x/sync/singleflight).

Errors:
  - notion.ErrNotConfigured is returned before any cache access
  - notion.ErrDatabaseNotFound is terminal and skips the fallback chain
  - rate limits and other upstream errors are returned only when every
    fallback tier missed
*/
package events
