// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

/*
Package sync runs the background jobs that keep the event backend healthy.

# Monitor

Monitor polls the Notion database on a fixed interval, normalizes the pages
and counts them per date bucket relative to the configured timezone:

  - past: ended before today
  - today: today lies between start and end date
  - this_week: starts within the next six days
  - later: starts after that
  - undated: no parsable start date

Each poll logs the counts and the drift against the previous poll and
updates the monitor_* metrics. The monitor never writes to
the cache; request traffic alone decides what is cached. Upstream errors
are logged and the loop continues on the next tick.

	monitor := sync.NewMonitor(client, normalizer, 15*time.Minute, loc)
	tree.AddSyncService(services.NewMonitorService(monitor))

# Sweeper

Sweeper periodically removes cache entries that expired longer than the
retention window ago. Cache reads never evict, so without the sweeper an
unbounded memory store would only grow.

	sweeper := sync.NewSweeper(responseCache, 10*time.Minute, 48*time.Hour)
	tree.AddCacheService(services.NewRunnerService("cache-sweeper", sweeper))
*/
package sync
