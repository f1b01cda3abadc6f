// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/metrics"
	"github.com/tomtom215/momentmillionaer/internal/models"
	"github.com/tomtom215/momentmillionaer/internal/notion"
)

// Bucket names used in logs and metrics.
const (
	BucketPast     = "past"
	BucketToday    = "today"
	BucketThisWeek = "this_week"
	BucketLater    = "later"
	BucketUndated  = "undated"
)

// Source is the upstream polled by the monitor.
type Source interface {
	Configured() bool
	ResolveDatabaseID(ctx context.Context) (string, error)
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
}

// Snapshot is the outcome of one poll.
type Snapshot struct {
	At       time.Time
	Total    int
	Past     int
	Today    int
	ThisWeek int
	Later    int
	Undated  int
}

// Buckets returns the counts keyed by bucket name.
func (s Snapshot) Buckets() map[string]int {
	return map[string]int{
		BucketPast:     s.Past,
		BucketToday:    s.Today,
		BucketThisWeek: s.ThisWeek,
		BucketLater:    s.Later,
		BucketUndated:  s.Undated,
	}
}

// Bucketize counts events relative to the day of now in loc.
//
// An event is "today" when today lies between its start and end date,
// "past" when it ended before today, "this_week" when it starts within the
// next six days and "later" otherwise.
func Bucketize(events []models.Event, now time.Time, loc *time.Location) Snapshot {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	weekEnd := today.AddDate(0, 0, 7)

	snap := Snapshot{At: now, Total: len(events)}
	for i := range events {
		start, ok := events[i].Start(loc)
		if !ok {
			snap.Undated++
			continue
		}
		end, _ := events[i].End(loc)
		if end.Before(start) {
			end = start
		}
		switch {
		case end.Before(today):
			snap.Past++
		case !start.After(today):
			snap.Today++
		case start.Before(weekEnd):
			snap.ThisWeek++
		default:
			snap.Later++
		}
	}
	return snap
}

// Monitor periodically polls the upstream and reports how many events it
// holds. It only logs and exports metrics; the cache is never touched.
type Monitor struct {
	source     Source
	normalizer *notion.Normalizer
	interval   time.Duration
	loc        *time.Location
	now        func() time.Time

	mu       sync.RWMutex
	running  bool
	last     *Snapshot
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewMonitor creates a monitor polling every interval.
func NewMonitor(source Source, normalizer *notion.Normalizer, interval time.Duration, loc *time.Location) *Monitor {
	if loc == nil {
		loc = time.UTC
	}
	return &Monitor{
		source:     source,
		normalizer: normalizer,
		interval:   interval,
		loc:        loc,
		now:        time.Now,
	}
}

// Start runs a first poll immediately and then polls every interval until
// ctx is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync monitor is already running")
	}
	m.running = true
	m.stopChan = make(chan struct{})
	m.mu.Unlock()

	logging.Info().Dur("interval", m.interval).Msg("Starting sync monitor")

	m.wg.Add(1)
	go m.loop(ctx)
	return nil
}

// Stop halts the loop and waits for an in-progress poll to finish.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync monitor is not running")
	}
	m.running = false
	close(m.stopChan)
	m.mu.Unlock()

	m.wg.Wait()
	logging.Info().Msg("Sync monitor stopped")
	return nil
}

// Last returns the most recent successful snapshot.
func (m *Monitor) Last() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return Snapshot{}, false
	}
	return *m.last, true
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.wg.Done()

	m.mu.RLock()
	stop := m.stopChan
	m.mu.RUnlock()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runOnce(ctx)
	for {
		select {
		case <-ticker.C:
			m.runOnce(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	if _, err := m.Poll(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Sync monitor poll failed, retrying next interval")
	}
}

// Poll fetches all events from the upstream once, logs the bucket counts
// with the drift against the previous poll and records metrics.
func (m *Monitor) Poll(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	if !m.source.Configured() {
		metrics.RecordMonitorRun(time.Since(start), nil, notion.ErrNotConfigured)
		return Snapshot{}, notion.ErrNotConfigured
	}

	id, err := m.source.ResolveDatabaseID(ctx)
	if err != nil {
		metrics.RecordMonitorRun(time.Since(start), nil, err)
		return Snapshot{}, fmt.Errorf("failed to resolve database: %w", err)
	}
	pages, err := m.source.QueryDatabase(ctx, id)
	if err != nil {
		metrics.RecordMonitorRun(time.Since(start), nil, err)
		return Snapshot{}, fmt.Errorf("failed to query database: %w", err)
	}

	snap := Bucketize(m.normalizer.NormalizeAll(pages), m.now(), m.loc)
	metrics.RecordMonitorRun(time.Since(start), snap.Buckets(), nil)

	m.mu.Lock()
	prev := m.last
	m.last = &snap
	m.mu.Unlock()

	event := logging.Ctx(ctx).Info().
		Int("total", snap.Total).
		Int(BucketPast, snap.Past).
		Int(BucketToday, snap.Today).
		Int(BucketThisWeek, snap.ThisWeek).
		Int(BucketLater, snap.Later).
		Int(BucketUndated, snap.Undated)
	if prev != nil {
		event = event.Int("drift", snap.Total-prev.Total)
	}
	event.Msg("Sync monitor poll completed")
	return snap, nil
}
