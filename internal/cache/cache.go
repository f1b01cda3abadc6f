// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/momentmillionaer/internal/metrics"
)

// BackupSuffix is appended to a resource key to form its long-TTL twin.
const BackupSuffix = "-backup"

// BackupKey returns the backup key for key ("events" -> "events-backup").
func BackupKey(key string) string {
	return key + BackupSuffix
}

// Cacher is the cache API the rest of the backend depends on. It is built
// once in main and injected, so a remote store can replace the in-process one
// without touching call sites.
type Cacher interface {
	// Set stores value (JSON-encoded) with the given freshness window,
	// overwriting any existing entry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Get decodes a fresh entry into dst. An expired entry is a miss but is
	// left in place.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)

	// GetStale decodes the entry into dst whether or not it is fresh.
	GetStale(ctx context.Context, key string, dst interface{}) (bool, error)

	// Peek decodes the entry into dst and reports whether it exists and
	// whether it is fresh. It records no lookup statistics.
	Peek(ctx context.Context, key string, dst interface{}) (found, fresh bool, err error)

	// Has reports whether Get would hit.
	Has(ctx context.Context, key string) bool

	// HasAny reports whether any entry, fresh or stale, exists.
	HasAny(ctx context.Context, key string) bool

	// Delete removes the named entries.
	Delete(ctx context.Context, keys ...string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Sweep removes entries that have been stale for longer than retention
	// and returns how many were removed.
	Sweep(ctx context.Context, retention time.Duration) (int, error)

	// GetStats returns a snapshot of the counters.
	GetStats() Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	StaleHits int64
	Misses    int64
	Sets      int64
	Evictions int64
	LastSweep time.Time
}

// HitRate returns fresh hits as a percentage of fresh lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

var _ Cacher = (*Cache)(nil)

// Cache implements Cacher on top of a Store.
type Cache struct {
	store Store
	now   func() time.Time

	mu    sync.Mutex
	stats Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides time.Now; tests use it to move entries past their TTL.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache over store. A nil store gets an in-memory one.
//
//	c := cache.New(nil)
//	_ = c.Set(ctx, "categories", []string{"Musik"}, 30*time.Minute)
func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = newMemoryStore()
	}
	c := &Cache{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Driver returns the backing store's driver name.
func (c *Cache) Driver() Driver {
	return c.store.Driver()
}

// Set stores value under key.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value %q: %w", key, err)
	}
	entry := Entry{Value: body, StoredAt: c.now(), TTL: ttl}
	if err := c.store.Save(ctx, key, entry); err != nil {
		return fmt.Errorf("failed to store cache entry %q: %w", key, err)
	}
	c.mu.Lock()
	c.stats.Sets++
	c.mu.Unlock()
	return nil
}

// Get decodes a fresh entry into dst.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	entry, ok, err := c.store.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load cache entry %q: %w", key, err)
	}
	if !ok || !entry.Fresh(c.now()) {
		c.record(key, metrics.CacheResultMiss)
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}
	c.record(key, metrics.CacheResultHit)
	return true, nil
}

// GetStale decodes the entry into dst regardless of freshness.
func (c *Cache) GetStale(ctx context.Context, key string, dst interface{}) (bool, error) {
	entry, ok, err := c.store.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load cache entry %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}
	c.record(key, metrics.CacheResultStale)
	return true, nil
}

// Peek decodes the entry into dst without touching the lookup counters.
// Fallback reads use it so they do not skew the hit rate.
func (c *Cache) Peek(ctx context.Context, key string, dst interface{}) (found, fresh bool, err error) {
	entry, ok, err := c.store.Load(ctx, key)
	if err != nil {
		return false, false, fmt.Errorf("failed to load cache entry %q: %w", key, err)
	}
	if !ok {
		return false, false, nil
	}
	if err := json.Unmarshal(entry.Value, dst); err != nil {
		return false, false, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}
	return true, entry.Fresh(c.now()), nil
}

// Has reports whether a fresh entry exists. Store errors count as absent.
func (c *Cache) Has(ctx context.Context, key string) bool {
	entry, ok, err := c.store.Load(ctx, key)
	return err == nil && ok && entry.Fresh(c.now())
}

// HasAny reports whether any entry exists. Store errors count as absent.
func (c *Cache) HasAny(ctx context.Context, key string) bool {
	_, ok, err := c.store.Load(ctx, key)
	return err == nil && ok
}

// Delete removes the named entries.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if err := c.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete cache entries: %w", err)
	}
	c.mu.Lock()
	c.stats.Evictions += int64(len(keys))
	c.mu.Unlock()
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cache keys: %w", err)
	}
	if err := c.store.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	c.mu.Lock()
	c.stats.Evictions += int64(len(keys))
	c.mu.Unlock()
	return nil
}

// Sweep removes entries stale for longer than retention.
func (c *Cache) Sweep(ctx context.Context, retention time.Duration) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cache keys: %w", err)
	}

	now := c.now()
	var expired []string
	for _, key := range keys {
		entry, ok, err := c.store.Load(ctx, key)
		if err != nil || !ok {
			continue
		}
		if entry.Stale(now) > retention {
			expired = append(expired, key)
		}
	}

	if len(expired) > 0 {
		if err := c.store.Delete(ctx, expired...); err != nil {
			return 0, fmt.Errorf("failed to delete expired entries: %w", err)
		}
	}

	c.mu.Lock()
	c.stats.Evictions += int64(len(expired))
	c.stats.LastSweep = now
	c.mu.Unlock()
	metrics.CacheEvictions.Add(float64(len(expired)))
	return len(expired), nil
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) record(key, result string) {
	c.mu.Lock()
	switch result {
	case metrics.CacheResultHit:
		c.stats.Hits++
	case metrics.CacheResultStale:
		c.stats.StaleHits++
	default:
		c.stats.Misses++
	}
	c.mu.Unlock()
	metrics.RecordCacheLookup(key, result)
}
