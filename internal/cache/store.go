// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// Driver names a Store implementation.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverRedis  Driver = "redis"
	DriverNATS   Driver = "nats"
)

// Store is the raw key/value backend behind Cache. Implementations must not
// drop entries on read; Load returns stale entries unchanged.
type Store interface {
	Driver() Driver
	Load(ctx context.Context, key string) (Entry, bool, error)
	Save(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, keys ...string) error
	Flush(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// ErrStoreUnavailable is returned by remote stores built without a client.
var ErrStoreUnavailable = errors.New("cache store unavailable")

// StoreConfig selects and configures a Store.
type StoreConfig struct {
	Driver Driver
	Prefix string

	// Retention is how long an entry is kept after it stops being fresh.
	// Remote stores use TTL+Retention as their physical expiry.
	Retention time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL    string
	NATSBucket string
}

// NewStore builds the configured Store. The returned close function releases
// network connections and is never nil.
func NewStore(ctx context.Context, cfg StoreConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", DriverMemory:
		return newMemoryStore(), noop, nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return newRedisStore(client, cfg.Prefix, cfg.Retention), client.Close, nil

	case DriverNATS:
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("momentmillionaer-cache"))
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to nats at %s: %w", cfg.NATSURL, err)
		}
		kv, err := openBucket(nc, cfg.NATSBucket)
		if err != nil {
			nc.Close()
			return nil, noop, err
		}
		return newNATSStore(kv, cfg.Prefix, cfg.Retention), func() error { nc.Close(); return nil }, nil

	default:
		return nil, noop, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

func openBucket(nc *nats.Conn, bucket string) (nats.KeyValue, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to open jetstream context: %w", err)
	}
	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "Momentmillionär event cache",
			History:     1,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open key-value bucket %s: %w", bucket, err)
	}
	return kv, nil
}
