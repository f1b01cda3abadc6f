// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/momentmillionaer/internal/cache"
	"github.com/tomtom215/momentmillionaer/internal/notion"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// mockSource is a scripted upstream.
type mockSource struct {
	mu           sync.Mutex
	configured   bool
	pages        []notion.Page
	queryErr     error
	resolveErr   error
	schema       *notion.Database
	queryCalls   int32
	resolveCalls int32
	block        chan struct{}
}

func newMockSource(pages ...notion.Page) *mockSource {
	return &mockSource{configured: true, pages: pages}
}

func (m *mockSource) Configured() bool { return m.configured }

func (m *mockSource) ResolveDatabaseID(_ context.Context) (string, error) {
	atomic.AddInt32(&m.resolveCalls, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return "db-1", nil
}

func (m *mockSource) QueryDatabase(_ context.Context, _ string) ([]notion.Page, error) {
	atomic.AddInt32(&m.queryCalls, 1)
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.pages, nil
}

func (m *mockSource) RetrieveDatabase(_ context.Context, _ string) (*notion.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if m.schema == nil {
		return &notion.Database{ID: "db-1"}, nil
	}
	return m.schema, nil
}

func (m *mockSource) fail(err error) {
	m.mu.Lock()
	m.queryErr = err
	m.mu.Unlock()
}

func (m *mockSource) queries() int32 {
	return atomic.LoadInt32(&m.queryCalls)
}

func page(id, title string, categories ...string) notion.Page {
	opts := make([]notion.SelectOption, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, notion.SelectOption{Name: c})
	}
	return notion.Page{
		ID: id,
		Properties: map[string]notion.Property{
			"Name":      {Type: notion.PropertyTitle, Title: []notion.RichText{{PlainText: title}}},
			"Kategorie": {Type: notion.PropertyMultiSelect, MultiSelect: opts},
		},
	}
}

var errRateLimited = &notion.APIError{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "slow down"}

func newTestService(t *testing.T, src *mockSource) (*Service, *cache.Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)}
	c := cache.New(cache.NewMemoryStore(), cache.WithClock(clock.Now))
	normalizer := notion.NewNormalizer(notion.NewClassifier(nil), "Zielgruppe", time.UTC)
	svc := NewService(c, src, normalizer, Config{
		TTL:              30 * time.Minute,
		BackupTTL:        24 * time.Hour,
		AudienceProperty: "Zielgruppe",
	})
	return svc, c, clock
}

func TestEvents_MissThenHit(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert", "Musik"))
	svc, c, _ := newTestService(t, src)
	ctx := context.Background()

	res, err := svc.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status() != StatusMiss || len(res.Data) != 1 || res.Data[0].Title != "Konzert" {
		t.Fatalf("first call = %+v", res)
	}
	if !c.Has(ctx, KeyEvents) || !c.Has(ctx, cache.BackupKey(KeyEvents)) {
		t.Error("both primary and backup must be written")
	}

	res, err = svc.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status() != StatusHit {
		t.Errorf("second call status = %s, want hit", res.Status())
	}
	if src.queries() != 1 {
		t.Errorf("upstream queries = %d, want 1", src.queries())
	}
}

func TestEvents_RateLimitServesStalePrimary(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert"))
	svc, _, clock := newTestService(t, src)
	ctx := context.Background()

	if _, err := svc.Events(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(31 * time.Minute)
	src.fail(errRateLimited)

	res, err := svc.Events(ctx)
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if !res.Fallback || res.Tier != TierStalePrimary || !res.RateLimited {
		t.Errorf("result = %+v", res)
	}
	if res.Status() != StatusFallback {
		t.Errorf("status = %s", res.Status())
	}
	if len(res.Data) != 1 {
		t.Errorf("data = %v", res.Data)
	}
}

func TestEvents_FallbackTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prepare func(ctx context.Context, c *cache.Cache, clock *fakeClock)
		want    Tier
	}{
		{
			name: "fresh backup",
			prepare: func(ctx context.Context, c *cache.Cache, _ *fakeClock) {
				_ = c.Delete(ctx, KeyEvents)
			},
			want: TierFreshBackup,
		},
		{
			name: "stale backup",
			prepare: func(ctx context.Context, c *cache.Cache, clock *fakeClock) {
				_ = c.Delete(ctx, KeyEvents)
				clock.Advance(25 * time.Hour)
			},
			want: TierStaleBackup,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := newMockSource(page("1", "Konzert"))
			svc, c, clock := newTestService(t, src)
			ctx := context.Background()
			if _, err := svc.Events(ctx); err != nil {
				t.Fatal(err)
			}
			tt.prepare(ctx, c, clock)
			src.fail(errors.New("connection reset"))

			res, err := svc.Events(ctx)
			if err != nil {
				t.Fatalf("expected fallback, got %v", err)
			}
			if res.Tier != tt.want || res.RateLimited {
				t.Errorf("tier = %s rateLimited = %v, want %s", res.Tier, res.RateLimited, tt.want)
			}
		})
	}
}

func TestEvents_FallbackLeavesLookupStatsAlone(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert"))
	svc, c, clock := newTestService(t, src)
	ctx := context.Background()

	if _, err := svc.Events(ctx); err != nil {
		t.Fatal(err)
	}
	_ = c.Delete(ctx, KeyEvents)
	clock.Advance(25 * time.Hour)
	src.fail(errors.New("connection reset"))

	res, err := svc.Events(ctx)
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if res.Tier != TierStaleBackup {
		t.Fatalf("tier = %s, want %s", res.Tier, TierStaleBackup)
	}

	// One primary miss per request; the in-flight re-check and the fallback
	// chain must not add lookups of their own.
	stats := c.GetStats()
	if stats.Misses != 2 || stats.Hits != 0 || stats.StaleHits != 0 {
		t.Errorf("stats = %+v, want 2 misses and no hits", stats)
	}
}

func TestEvents_NoFallbackErrors(t *testing.T) {
	t.Parallel()

	src := newMockSource()
	src.fail(errRateLimited)
	svc, _, _ := newTestService(t, src)

	_, err := svc.Events(context.Background())
	if !notion.IsRateLimited(err) {
		t.Errorf("expected rate limited error, got %v", err)
	}

	src.fail(errors.New("boom"))
	_, err = svc.Events(context.Background())
	if err == nil || notion.IsRateLimited(err) {
		t.Errorf("expected generic error, got %v", err)
	}
}

func TestEvents_NotConfiguredBeforeCache(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert"))
	svc, c, _ := newTestService(t, src)
	ctx := context.Background()
	if _, err := svc.Events(ctx); err != nil {
		t.Fatal(err)
	}

	src.configured = false
	if _, err := svc.Events(ctx); !errors.Is(err, notion.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
	if _, err := svc.Categories(ctx); !errors.Is(err, notion.ErrNotConfigured) {
		t.Errorf("categories error = %v", err)
	}
	if got := c.GetStats().Hits; got != 0 {
		t.Errorf("cache must not be consulted when unconfigured, hits = %d", got)
	}
}

func TestEvents_DatabaseNotFoundIsTerminal(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert"))
	svc, c, clock := newTestService(t, src)
	ctx := context.Background()
	if _, err := svc.Events(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Hour)
	svc.forgetDatabase()
	src.mu.Lock()
	src.resolveErr = notion.ErrDatabaseNotFound
	src.mu.Unlock()

	if _, err := svc.Events(ctx); !errors.Is(err, notion.ErrDatabaseNotFound) {
		t.Errorf("error = %v, want ErrDatabaseNotFound", err)
	}
	if !c.HasAny(ctx, KeyEvents) {
		t.Error("stale entry must survive")
	}
}

func TestEvents_DatabaseIDCached(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert"))
	svc, _, clock := newTestService(t, src)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Events(ctx); err != nil {
			t.Fatal(err)
		}
		clock.Advance(time.Hour)
	}
	if got := atomic.LoadInt32(&src.resolveCalls); got != 1 {
		t.Errorf("resolve calls = %d, want 1", got)
	}

	src.fail(&notion.APIError{Status: http.StatusNotFound, Code: "object_not_found"})
	_, _ = svc.Events(ctx)
	src.fail(nil)
	if _, err := svc.Events(ctx); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&src.resolveCalls); got != 2 {
		t.Errorf("404 should force rediscovery, resolve calls = %d", got)
	}
}

func TestEvents_SingleFlight(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "Konzert"))
	src.block = make(chan struct{})
	svc, _, _ := newTestService(t, src)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Events(context.Background())
			errs <- err
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for src.queries() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.block)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("caller error: %v", err)
		}
	}
	if got := src.queries(); got != 1 {
		t.Errorf("upstream queries = %d, want 1", got)
	}
}

func TestSync_ClearsAndRefetches(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "A", "Musik"), page("2", "B"))
	svc, c, _ := newTestService(t, src)
	ctx := context.Background()

	if _, err := svc.Categories(ctx); err != nil {
		t.Fatal(err)
	}
	n, err := svc.Sync(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("event count = %d, want 2", n)
	}
	if c.HasAny(ctx, KeyCategories) || c.HasAny(ctx, cache.BackupKey(KeyCategories)) {
		t.Error("sync must clear every entry")
	}

	before := src.queries()
	res, err := svc.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status() != StatusHit || src.queries() != before {
		t.Errorf("GET after sync must be served from cache, status=%s queries=%d->%d", res.Status(), before, src.queries())
	}
}

func TestSync_Errors(t *testing.T) {
	t.Parallel()

	src := newMockSource()
	src.configured = false
	svc, _, _ := newTestService(t, src)
	if _, err := svc.Sync(context.Background()); !errors.Is(err, notion.ErrNotConfigured) {
		t.Errorf("error = %v", err)
	}

	src2 := newMockSource()
	src2.fail(errRateLimited)
	svc2, _, _ := newTestService(t, src2)
	if _, err := svc2.Sync(context.Background()); !notion.IsRateLimited(err) {
		t.Errorf("error = %v, want rate limited", err)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	src := newMockSource(
		page("1", "A", "Musik", "Kinder"),
		page("2", "B", "Theater", "Musik"),
		page("3", "C", "Ausstellung"),
	)
	svc, _, clock := newTestService(t, src)
	ctx := context.Background()

	res, err := svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(res.Data, ","); got != "Ausstellung,Kinder,Musik,Theater" {
		t.Errorf("categories = %s", got)
	}

	clock.Advance(time.Hour)
	src.fail(errRateLimited)
	res, err = svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Fallback {
		t.Error("categories must propagate the fallback flag")
	}
	if len(res.Data) != 4 {
		t.Errorf("fallback categories = %v", res.Data)
	}
}

func TestCategories_DegradedEventsNotCached(t *testing.T) {
	t.Parallel()

	src := newMockSource(page("1", "A", "Musik"))
	svc, c, clock := newTestService(t, src)
	ctx := context.Background()

	if _, err := svc.Events(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Hour)
	src.fail(errRateLimited)

	res, err := svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Fallback || res.Tier != TierStalePrimary || !res.RateLimited {
		t.Errorf("result = %+v", res)
	}
	if c.HasAny(ctx, KeyCategories) {
		t.Error("categories derived from fallback events must not be cached")
	}
}

func TestAudiences(t *testing.T) {
	t.Parallel()

	src := newMockSource()
	src.schema = &notion.Database{
		ID: "db-1",
		Properties: map[string]notion.DatabaseProperty{
			"Zielgruppe": {Type: notion.PropertyMultiSelect, MultiSelect: &notion.SelectConfig{Options: []notion.SelectOption{{Name: "Familien"}, {Name: "Jugendliche"}}}},
		},
	}
	svc, _, _ := newTestService(t, src)
	ctx := context.Background()

	res := svc.Audiences(ctx, false)
	if strings.Join(res.Data, ",") != "Familien,Jugendliche" {
		t.Fatalf("audiences = %v", res.Data)
	}
	if svc.Audiences(ctx, false).Status() != StatusHit {
		t.Error("second call should hit the cache")
	}
	if svc.Audiences(ctx, true).Status() != StatusMiss {
		t.Error("refresh should bypass the cache")
	}
}

func TestAudiences_NeverFails(t *testing.T) {
	t.Parallel()

	src := newMockSource()
	src.fail(errors.New("boom"))
	svc, _, _ := newTestService(t, src)

	res := svc.Audiences(context.Background(), false)
	if res.Data == nil || len(res.Data) != 0 {
		t.Errorf("expected empty list, got %#v", res.Data)
	}

	src.configured = false
	res = svc.Audiences(context.Background(), true)
	if res.Data == nil || len(res.Data) != 0 {
		t.Errorf("expected empty list when unconfigured, got %#v", res.Data)
	}
}

func TestResultStatus(t *testing.T) {
	t.Parallel()

	if (Result[int]{Cached: true}).Status() != StatusHit {
		t.Error("cached -> hit")
	}
	if (Result[int]{}).Status() != StatusMiss {
		t.Error("fetched -> miss")
	}
	if (Result[int]{Cached: true, Fallback: true}).Status() != StatusFallback {
		t.Error("fallback wins")
	}
}
