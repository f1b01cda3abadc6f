// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/momentmillionaer/internal/cache"
)

func TestSweeper_SweepOnce(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := cache.New(cache.NewMemoryStore(), cache.WithClock(clock))
	ctx := context.Background()

	if err := c.Set(ctx, "old", []string{"a"}, time.Minute); err != nil {
		t.Fatal(err)
	}
	now = now.Add(3 * time.Hour)
	if err := c.Set(ctx, "new", []string{"b"}, time.Minute); err != nil {
		t.Fatal(err)
	}

	s := NewSweeper(c, time.Minute, time.Hour)
	if removed := s.SweepOnce(ctx); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if c.HasAny(ctx, "old") || !c.HasAny(ctx, "new") {
		t.Error("only the long-expired entry should be removed")
	}
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	c := cache.New(cache.NewMemoryStore())
	s := NewSweeper(c, time.Millisecond, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
