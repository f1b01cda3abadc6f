// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore keeps entries in a go-cache instance with backend expiry and
// the janitor disabled; freshness is decided by Cache, removal by Sweep.
type memoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() Store {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: gocache.New(gocache.NoExpiration, 0)}
}

func (s *memoryStore) Driver() Driver { return DriverMemory }

func (s *memoryStore) Load(_ context.Context, key string) (Entry, bool, error) {
	item, ok := s.items.Get(key)
	if !ok {
		return Entry{}, false, nil
	}
	entry, ok := item.(Entry)
	if !ok {
		return Entry{}, false, nil
	}
	entry.Value = cloneBytes(entry.Value)
	return entry, true, nil
}

func (s *memoryStore) Save(_ context.Context, key string, entry Entry) error {
	entry.Value = cloneBytes(entry.Value)
	s.items.Set(key, entry, gocache.NoExpiration)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.items.Delete(key)
	}
	return nil
}

func (s *memoryStore) Flush(_ context.Context) error {
	s.items.Flush()
	return nil
}

func (s *memoryStore) Keys(_ context.Context) ([]string, error) {
	items := s.items.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	return keys, nil
}
