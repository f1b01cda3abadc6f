// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package events

// CacheStatus describes where a result came from.
type CacheStatus string

const (
	StatusHit      CacheStatus = "hit"
	StatusMiss     CacheStatus = "miss"
	StatusFallback CacheStatus = "fallback"
)

// Tier names the fallback tier that answered a degraded request.
type Tier string

const (
	TierNone         Tier = ""
	TierStalePrimary Tier = "stale-primary"
	TierFreshBackup  Tier = "fresh-backup"
	TierStaleBackup  Tier = "stale-backup"
)

// Result wraps resolved data with its provenance.
//
// Data may be shared between concurrent callers and must not be modified.
type Result[T any] struct {
	Data T

	// Fallback is true when Data came from the fallback chain.
	Fallback bool
	Tier     Tier

	// RateLimited is true when the fallback was triggered by an upstream
	// rate limit rather than a generic failure.
	RateLimited bool

	// Cached is true for a fresh primary cache hit.
	Cached bool
}

// Status returns the X-Cache value for the result.
func (r Result[T]) Status() CacheStatus {
	switch {
	case r.Fallback:
		return StatusFallback
	case r.Cached:
		return StatusHit
	default:
		return StatusMiss
	}
}
