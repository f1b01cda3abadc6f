// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package cache provides the TTL cache that sits in front of the Notion API.

# Freshness versus Presence

Every entry records when it was stored and for how long it is fresh. The two
read paths never remove anything:

  - Get returns the value only while it is fresh
  - GetStale returns the value for as long as the entry physically exists

Physical removal happens only through Delete, Clear and Sweep. Sweep is run
periodically by a supervised background service and drops entries that have
been stale for longer than the configured retention. This keeps an expired
primary entry readable for the fallback chain even after a fresh read missed
on it.

# Primary and Backup Keys

The event service writes each resource twice: under its own key with a short
TTL and under BackupKey(key) with a 24 hour TTL. See internal/events.

# Stores

The Store interface is the raw key/value backend:

  - memory: patrickmn/go-cache with backend expiry disabled (default)
  - redis: go-redis with msgpack-encoded entries
  - nats: a JetStream key-value bucket with msgpack-encoded entries

Example:

	store, closeFn, err := cache.NewStore(ctx, cache.StoreConfig{Driver: cache.DriverMemory})
	c := cache.New(store)
	_ = c.Set(ctx, "events", events, 30*time.Minute)

	var cached []models.Event
	if ok, _ := c.Get(ctx, "events", &cached); ok {
	    // fresh
	}
*/
package cache
