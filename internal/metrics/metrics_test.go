// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	m := &dto.Metric{}
	if err := metric.Write(m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/events", "200"))
	RecordAPIRequest("GET", "/api/events", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/events", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordAPIRequest_ObservesDuration(t *testing.T) {
	h := APIRequestDuration.WithLabelValues("POST", "/api/sync")
	before := histogramCount(t, h)
	RecordAPIRequest("POST", "/api/sync", "200", 250*time.Millisecond)
	if got := histogramCount(t, h); got != before+1 {
		t.Errorf("sample count = %d, want %d", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	c := CacheLookups.WithLabelValues("metrics-test", CacheResultStale)
	before := testutil.ToFloat64(c)
	RecordCacheLookup("metrics-test", CacheResultStale)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("stale lookups = %v, want %v", got, before+1)
	}
}

func TestRecordNotionRequest(t *testing.T) {
	ok := NotionRequestsTotal.WithLabelValues("query_database", "200")
	failed := NotionRequestsTotal.WithLabelValues("query_database", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordNotionRequest("query_database", 200, time.Second)
	RecordNotionRequest("query_database", 0, time.Second)

	if testutil.ToFloat64(ok) != okBefore+1 {
		t.Error("expected 200 counter to increase")
	}
	if testutil.ToFloat64(failed) != failedBefore+1 {
		t.Error("expected error counter to increase")
	}
}

func TestRecordMonitorRun(t *testing.T) {
	RecordMonitorRun(time.Second, map[string]int{"upcoming": 7, "today": 2}, nil)
	if got := testutil.ToFloat64(MonitorEvents.WithLabelValues("upcoming")); got != 7 {
		t.Errorf("upcoming gauge = %v, want 7", got)
	}

	errors0 := testutil.ToFloat64(MonitorRuns.WithLabelValues("error"))
	RecordMonitorRun(time.Second, nil, errors.New("rate limited"))
	if got := testutil.ToFloat64(MonitorRuns.WithLabelValues("error")); got != errors0+1 {
		t.Errorf("error runs = %v, want %v", got, errors0+1)
	}
}

func TestRecordSyncAndFallback(t *testing.T) {
	success := testutil.ToFloat64(SyncRequests.WithLabelValues("success"))
	RecordSync(nil)
	if testutil.ToFloat64(SyncRequests.WithLabelValues("success")) != success+1 {
		t.Error("expected sync success to increase")
	}

	fb := CacheFallbackResponses.WithLabelValues("events", "backup")
	before := testutil.ToFloat64(fb)
	RecordFallback("events", "backup")
	if testutil.ToFloat64(fb) != before+1 {
		t.Error("expected fallback counter to increase")
	}
}
