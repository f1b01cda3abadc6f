// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/momentmillionaer/internal/cache"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/metrics"
	"github.com/tomtom215/momentmillionaer/internal/notion"
)

// fetched is the outcome of an upstream fetch. degraded results were
// themselves served from a fallback and are not cached.
type fetched[T any] struct {
	data        T
	degraded    bool
	tier        Tier
	rateLimited bool
}

// readThrough implements the cache-first state machine for one key.
//
//  1. fresh primary hit -> return (unless skipFresh)
//  2. single-flight fetch from upstream
//  3. success -> write primary and backup, return
//  4. failure -> stale primary, fresh backup, stale backup
//  5. all tiers missed -> return the upstream error
func readThrough[T any](ctx context.Context, s *Service, key string, skipFresh bool, fetch func(context.Context) (fetched[T], error)) (Result[T], error) {
	log := logging.Ctx(ctx)

	if !skipFresh {
		var cached T
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed, fetching from upstream")
		} else if ok {
			return Result[T]{Data: cached, Cached: true}, nil
		}
	}

	flightKey := key
	if skipFresh {
		flightKey += "?refresh"
	}
	v, err, shared := s.group.Do(flightKey, func() (interface{}, error) {
		// Waiters share this flight; one caller going away must not fail
		// the others.
		flightCtx := context.WithoutCancel(ctx)

		if !skipFresh {
			var cached T
			if found, fresh, _ := s.cache.Peek(flightCtx, key, &cached); found && fresh {
				return Result[T]{Data: cached, Cached: true}, nil
			}
		}

		got, err := fetch(flightCtx)
		if err == nil {
			if got.degraded {
				return Result[T]{Data: got.data, Fallback: true, Tier: got.tier, RateLimited: got.rateLimited}, nil
			}
			s.store(flightCtx, key, got.data)
			return Result[T]{Data: got.data}, nil
		}

		if errors.Is(err, notion.ErrNotConfigured) || errors.Is(err, notion.ErrDatabaseNotFound) {
			return nil, err
		}

		rateLimited := notion.IsRateLimited(err)
		if rateLimited {
			log.Warn().Err(err).Str("key", key).Msg("Notion rate limit reached, trying cached fallback")
		} else {
			log.Error().Err(err).Str("key", key).Msg("Upstream fetch failed, trying cached fallback")
		}

		res, ok := fallback[T](flightCtx, s, key)
		if !ok {
			log.Error().Str("key", key).Bool("rate_limited", rateLimited).Msg("No cached fallback available")
			return nil, err
		}
		res.RateLimited = rateLimited
		metrics.RecordFallback(key, string(res.Tier))
		log.Warn().Str("key", key).Str("tier", string(res.Tier)).Msg("Serving cached fallback data")
		return res, nil
	})
	if err != nil {
		return Result[T]{}, err
	}
	res, ok := v.(Result[T])
	if !ok {
		return Result[T]{}, fmt.Errorf("unexpected flight result type %T", v)
	}
	if shared {
		log.Debug().Str("key", key).Msg("Joined in-flight upstream fetch")
	}
	return res, nil
}

// fallback walks the chain: stale primary, fresh backup, stale backup.
// Reads go through Peek so fallbacks leave the hit/miss counters alone.
func fallback[T any](ctx context.Context, s *Service, key string) (Result[T], bool) {
	log := logging.Ctx(ctx)

	var primary T
	found, _, err := s.cache.Peek(ctx, key, &primary)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Fallback cache read failed")
	} else if found {
		return Result[T]{Data: primary, Fallback: true, Tier: TierStalePrimary}, true
	}

	backup := cache.BackupKey(key)
	var data T
	found, fresh, err := s.cache.Peek(ctx, backup, &data)
	if err != nil {
		log.Warn().Err(err).Str("key", backup).Msg("Fallback cache read failed")
		return Result[T]{}, false
	}
	if !found {
		return Result[T]{}, false
	}
	tier := TierStaleBackup
	if fresh {
		tier = TierFreshBackup
	}
	return Result[T]{Data: data, Fallback: true, Tier: tier}, true
}

// store writes the primary and backup entries. Write failures are logged;
// the fetched data is still served.
func (s *Service) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cfg.TTL); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
	if err := s.cache.Set(ctx, cache.BackupKey(key), value, s.cfg.BackupTTL); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("key", cache.BackupKey(key)).Msg("Failed to write backup cache entry")
	}
}
