// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package sync

import (
	"context"
	"time"

	"github.com/tomtom215/momentmillionaer/internal/cache"
	"github.com/tomtom215/momentmillionaer/internal/logging"
)

// Sweeper evicts cache entries that have been stale for longer than the
// retention window. It is the only component that removes expired entries.
type Sweeper struct {
	cache     cache.Cacher
	interval  time.Duration
	retention time.Duration
}

// NewSweeper creates a sweeper.
func NewSweeper(c cache.Cacher, interval, retention time.Duration) *Sweeper {
	return &Sweeper{cache: c, interval: interval, retention: retention}
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// SweepOnce runs a single sweep and returns the number of removed entries.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	removed, err := s.cache.Sweep(ctx, s.retention)
	if err != nil {
		logging.Warn().Err(err).Msg("Cache sweep failed")
		return removed
	}
	if removed > 0 {
		logging.Info().Int("removed", removed).Dur("retention", s.retention).Msg("Swept expired cache entries")
	}
	return removed
}
