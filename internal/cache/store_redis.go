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

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

type redisStore struct {
	client    RedisClient
	prefix    string
	retention time.Duration
}

func newRedisStore(client RedisClient, prefix string, retention time.Duration) *redisStore {
	if prefix == "" {
		prefix = "momentmillionaer"
	}
	return &redisStore{client: client, prefix: prefix, retention: retention}
}

func (s *redisStore) Driver() Driver { return DriverRedis }

func (s *redisStore) Load(ctx context.Context, key string) (Entry, bool, error) {
	if s.client == nil {
		return Entry{}, false, ErrStoreUnavailable
	}
	body, err := s.client.Get(ctx, s.cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	entry, err := decodeEntry(body)
	if err != nil {
		return Entry{}, false, fmt.Errorf("corrupt cache entry %q: %w", key, err)
	}
	return entry, true, nil
}

// Save sets a physical expiry of TTL+retention so Redis reclaims entries that
// Sweep never got to. A zero retention keeps entries until deleted.
func (s *redisStore) Save(ctx context.Context, key string, entry Entry) error {
	if s.client == nil {
		return ErrStoreUnavailable
	}
	body, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	var expiration time.Duration
	if s.retention > 0 {
		expiration = entry.TTL + s.retention
	}
	return s.client.Set(ctx, s.cacheKey(key), body, expiration).Err()
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if s.client == nil {
		return ErrStoreUnavailable
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = s.cacheKey(key)
	}
	return s.client.Del(ctx, full...).Err()
}

func (s *redisStore) Flush(ctx context.Context) error {
	if s.client == nil {
		return ErrStoreUnavailable
	}
	return s.scan(ctx, func(keys []string) error {
		return s.client.Del(ctx, keys...).Err()
	})
}

func (s *redisStore) Keys(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStoreUnavailable
	}
	var out []string
	err := s.scan(ctx, func(keys []string) error {
		for _, key := range keys {
			out = append(out, strings.TrimPrefix(key, s.prefix+":"))
		}
		return nil
	})
	return out, err
}

func (s *redisStore) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.cacheKey("*"), 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *redisStore) cacheKey(key string) string {
	return s.prefix + ":" + key
}
