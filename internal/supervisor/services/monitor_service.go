// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package services

import (
	"context"
	"fmt"
)

// StartStopper matches the lifecycle of internal/sync.Monitor.
type StartStopper interface {
	Start(ctx context.Context) error
	Stop() error
}

// MonitorService wraps the upstream monitor as a supervised service.
//
// Start spawns the monitor's polling goroutine and returns; Stop waits for it.
type MonitorService struct {
	monitor StartStopper
	name    string
}

// NewMonitorService creates a new monitor service wrapper.
//
// Example usage:
//
//	monitor := sync.NewMonitor(client, normalizer, cfg.Sync.Interval, loc)
//	tree.AddSyncService(services.NewMonitorService(monitor))
func NewMonitorService(monitor StartStopper) *MonitorService {
	return &MonitorService{
		monitor: monitor,
		name:    "sync-monitor",
	}
}

// Serve implements suture.Service.
//
// If Start fails, the error is returned immediately and suture restarts the
// service according to its backoff policy.
func (s *MonitorService) Serve(ctx context.Context) error {
	if err := s.monitor.Start(ctx); err != nil {
		return fmt.Errorf("monitor start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.monitor.Stop(); err != nil {
		return fmt.Errorf("monitor stop failed: %w", err)
	}

	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *MonitorService) String() string {
	return s.name
}
