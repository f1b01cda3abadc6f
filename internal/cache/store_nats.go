// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKeyValue captures the subset of nats.KeyValue used by the store.
type NATSKeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Purge(key string, opts ...nats.DeleteOpt) error
	ListKeys(opts ...nats.WatchOpt) (nats.KeyLister, error)
}

// natsStore keeps entries in a JetStream key-value bucket. The bucket has no
// TTL of its own; expired-beyond-retention entries are purged on Load so a
// cluster without a sweeper still converges.
type natsStore struct {
	kv        NATSKeyValue
	prefix    string
	retention time.Duration
	now       func() time.Time
}

func newNATSStore(kv NATSKeyValue, prefix string, retention time.Duration) *natsStore {
	if prefix == "" {
		prefix = "momentmillionaer"
	}
	return &natsStore{kv: kv, prefix: prefix, retention: retention, now: time.Now}
}

func (s *natsStore) Driver() Driver { return DriverNATS }

func (s *natsStore) Load(_ context.Context, key string) (Entry, bool, error) {
	if s.kv == nil {
		return Entry{}, false, ErrStoreUnavailable
	}
	kve, err := s.kv.Get(s.cacheKey(key))
	if isNATSMiss(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if kve.Operation() != nats.KeyValuePut {
		return Entry{}, false, nil
	}
	entry, err := decodeEntry(kve.Value())
	if err != nil {
		return Entry{}, false, fmt.Errorf("corrupt cache entry %q: %w", key, err)
	}
	if s.retention > 0 && entry.Stale(s.now()) > s.retention {
		_ = s.kv.Purge(s.cacheKey(key))
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (s *natsStore) Save(_ context.Context, key string, entry Entry) error {
	if s.kv == nil {
		return ErrStoreUnavailable
	}
	body, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	_, err = s.kv.Put(s.cacheKey(key), body)
	return err
}

func (s *natsStore) Delete(_ context.Context, keys ...string) error {
	if s.kv == nil {
		return ErrStoreUnavailable
	}
	for _, key := range keys {
		if err := s.kv.Purge(s.cacheKey(key)); err != nil && !isNATSMiss(err) {
			return err
		}
	}
	return nil
}

func (s *natsStore) Flush(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	return s.Delete(ctx, keys...)
}

func (s *natsStore) Keys(_ context.Context) ([]string, error) {
	if s.kv == nil {
		return nil, ErrStoreUnavailable
	}
	lister, err := s.kv.ListKeys(nats.IgnoreDeletes())
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = lister.Stop() }()

	scope := s.prefix + "."
	var keys []string
	for key := range lister.Keys() {
		if strings.HasPrefix(key, scope) {
			keys = append(keys, strings.TrimPrefix(key, scope))
		}
	}
	return keys, nil
}

func (s *natsStore) cacheKey(key string) string {
	return s.prefix + "." + key
}

func isNATSMiss(err error) bool {
	return errors.Is(err, nats.ErrKeyNotFound) || errors.Is(err, nats.ErrKeyDeleted)
}
