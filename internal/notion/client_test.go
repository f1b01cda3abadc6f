// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/momentmillionaer/internal/config"
)

const testPageURL = "https://www.notion.so/Momente-0123456789abcdef0123456789abcdef"
const testPageID = "01234567-89ab-cdef-0123-456789abcdef"

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := NewClient(&config.NotionConfig{
		Token:             "secret_test",
		PageURL:           testPageURL,
		DatabaseName:      "Veranstaltungen",
		BaseURL:           baseURL,
		Version:           "2022-06-28",
		Timeout:           5 * time.Second,
		MaxRetries:        2,
		RequestsPerSecond: 1000,
	})
	c.retryBaseDelay = time.Millisecond
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestParsePageID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"slug with id", testPageURL, testPageID, false},
		{"bare id", "https://www.notion.so/0123456789ABCDEF0123456789ABCDEF", testPageID, false},
		{"dashed id", "https://notion.so/" + testPageID, testPageID, false},
		{"query string", testPageURL + "?pvs=4", testPageID, false},
		{"no id", "https://www.notion.so/Momente", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePageID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePageID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePageID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	c := NewClient(&config.NotionConfig{BaseURL: "http://127.0.0.1:1", RequestsPerSecond: 1})
	if c.Configured() {
		t.Fatal("client without token should not be configured")
	}
	ctx := context.Background()
	if _, err := c.ResolveDatabaseID(ctx); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ResolveDatabaseID error = %v", err)
	}
	if _, err := c.QueryDatabase(ctx, "db"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("QueryDatabase error = %v", err)
	}
	if _, err := c.RetrieveDatabase(ctx, "db"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("RetrieveDatabase error = %v", err)
	}
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret_test" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"object": "database", "id": "db-1"})
	}))
	defer srv.Close()

	db, err := newTestClient(t, srv.URL).RetrieveDatabase(context.Background(), "db-1")
	if err != nil {
		t.Fatal(err)
	}
	if db.ID != "db-1" {
		t.Errorf("ID = %q", db.ID)
	}
}

func TestFindDatabase_ChildBlocks(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if !strings.HasPrefix(r.URL.Path, "/v1/blocks/"+testPageID+"/children") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("start_cursor") == "" {
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"object":      "list",
				"results":     []map[string]interface{}{{"object": "block", "id": "p1", "type": "paragraph"}},
				"has_more":    true,
				"next_cursor": "c2",
			})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"object": "list",
			"results": []map[string]interface{}{
				{"object": "block", "id": "other", "type": "child_database", "child_database": map[string]string{"title": "Archiv"}},
				{"object": "block", "id": "db-events", "type": "child_database", "child_database": map[string]string{"title": "Alle VERANSTALTUNGEN 2025"}},
			},
			"has_more": false,
		})
	}))
	defer srv.Close()

	id, err := newTestClient(t, srv.URL).FindDatabase(context.Background(), "Veranstaltungen")
	if err != nil {
		t.Fatal(err)
	}
	if id != "db-events" {
		t.Errorf("id = %q, want db-events", id)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFindDatabase_SearchFallbackAndNotFound(t *testing.T) {
	t.Parallel()

	for _, found := range []bool{true, false} {
		found := found
		t.Run(fmt.Sprintf("found=%v", found), func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch {
				case strings.HasPrefix(r.URL.Path, "/v1/blocks/"):
					writeJSON(t, w, http.StatusOK, map[string]interface{}{"object": "list", "results": []interface{}{}})
				case r.URL.Path == "/v1/search" && r.Method == http.MethodPost:
					body, _ := io.ReadAll(r.Body)
					if !strings.Contains(string(body), `"value":"database"`) {
						t.Errorf("search body %s lacks database filter", body)
					}
					results := []interface{}{}
					if found {
						results = append(results, map[string]interface{}{
							"object": "database", "id": "db-search",
							"title": []map[string]string{{"type": "text", "plain_text": "Veranstaltungen"}},
						})
					}
					writeJSON(t, w, http.StatusOK, map[string]interface{}{"object": "list", "results": results})
				default:
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
			}))
			defer srv.Close()

			id, err := newTestClient(t, srv.URL).FindDatabase(context.Background(), "veranstaltungen")
			if found {
				if err != nil || id != "db-search" {
					t.Errorf("FindDatabase = %q, %v", id, err)
				}
				return
			}
			if !errors.Is(err, ErrDatabaseNotFound) {
				t.Errorf("error = %v, want ErrDatabaseNotFound", err)
			}
		})
	}
}

func TestQueryDatabase_Pagination(t *testing.T) {
	t.Parallel()

	var cursors []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.PageSize != 100 {
			t.Errorf("page_size = %d", req.PageSize)
		}
		mu.Lock()
		cursors = append(cursors, req.StartCursor)
		mu.Unlock()

		switch req.StartCursor {
		case "":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"object": "list", "has_more": true, "next_cursor": "page2",
				"results": []map[string]interface{}{{"object": "page", "id": "e1"}, {"object": "page", "id": "e2"}},
			})
		case "page2":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"object": "list", "has_more": false, "next_cursor": nil,
				"results": []map[string]interface{}{{"object": "page", "id": "e3"}, {"object": "page", "id": "gone", "archived": true}},
			})
		}
	}))
	defer srv.Close()

	pages, err := newTestClient(t, srv.URL).QueryDatabase(context.Background(), "db-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 || pages[0].ID != "e1" || pages[2].ID != "e3" {
		t.Errorf("pages = %+v", pages)
	}
	if strings.Join(cursors, ",") != ",page2" {
		t.Errorf("cursors = %v", cursors)
	}
}

func TestQueryDatabase_AllOrNothing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.StartCursor == "" {
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"object": "list", "has_more": true, "next_cursor": "page2",
				"results": []map[string]interface{}{{"object": "page", "id": "e1"}},
			})
			return
		}
		writeJSON(t, w, http.StatusBadGateway, map[string]interface{}{"object": "error", "status": 502, "code": "bad_gateway", "message": "upstream"})
	}))
	defer srv.Close()

	pages, err := newTestClient(t, srv.URL).QueryDatabase(context.Background(), "db-1")
	if err == nil {
		t.Fatal("expected error on failing second page")
	}
	if pages != nil {
		t.Errorf("expected no partial results, got %d pages", len(pages))
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway || apiErr.Code != "bad_gateway" {
		t.Errorf("error = %v", err)
	}
	if IsRateLimited(err) {
		t.Error("502 must not be classified as rate limited")
	}
}

func TestDoRequest_RetriesRateLimit(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.Header().Set("Retry-After", "0")
			writeJSON(t, w, http.StatusTooManyRequests, map[string]interface{}{"object": "error", "status": 429, "code": "rate_limited", "message": "slow down"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"object": "database", "id": "db-1"})
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).RetrieveDatabase(context.Background(), "db-1"); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoRequest_RateLimitExhausted(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(t, w, http.StatusTooManyRequests, map[string]interface{}{"object": "error", "status": 429, "code": "rate_limited", "message": "slow down"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).QueryDatabase(context.Background(), "db-1")
	if !IsRateLimited(err) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 1 + 2 retries", calls)
	}
}

func TestDoRequest_RetriesServerError(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			writeJSON(t, w, http.StatusServiceUnavailable, map[string]interface{}{"object": "error", "status": 503, "code": "service_unavailable", "message": "try again"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"object": "list", "results": []map[string]interface{}{{"object": "page", "id": "e1"}}})
	}))
	defer srv.Close()

	pages, err := newTestClient(t, srv.URL).QueryDatabase(context.Background(), "db-1")
	if err != nil {
		t.Fatalf("expected success after a transient 503, got %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("pages = %d, want 1", len(pages))
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDoRequest_RetryableStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		code   string
		calls  int32
	}{
		{http.StatusInternalServerError, "internal_server_error", 3},
		{http.StatusBadGateway, "bad_gateway", 3},
		{http.StatusTooManyRequests, "rate_limited", 3},
		{http.StatusBadRequest, "validation_error", 1},
		{http.StatusUnauthorized, "unauthorized", 1},
		{http.StatusNotFound, "object_not_found", 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				writeJSON(t, w, tt.status, map[string]interface{}{"object": "error", "status": tt.status, "code": tt.code, "message": "nope"})
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).RetrieveDatabase(context.Background(), "db-1")
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Status != tt.status {
				t.Fatalf("error = %v, want APIError with status %d", err, tt.status)
			}
			if got := atomic.LoadInt32(&calls); got != tt.calls {
				t.Errorf("calls = %d, want %d", got, tt.calls)
			}
		})
	}
}

func TestConfiguredDatabaseID_NotFound(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(t, w, http.StatusNotFound, map[string]interface{}{"object": "error", "status": 404, "code": "object_not_found", "message": "Could not find database"})
	}))
	defer srv.Close()

	c := NewClient(&config.NotionConfig{
		Token:             "secret_test",
		DatabaseID:        "db-gone",
		BaseURL:           srv.URL,
		Version:           "2022-06-28",
		Timeout:           5 * time.Second,
		MaxRetries:        2,
		RequestsPerSecond: 1000,
	})
	c.retryBaseDelay = time.Millisecond
	ctx := context.Background()

	id, err := c.ResolveDatabaseID(ctx)
	if err != nil || id != "db-gone" {
		t.Fatalf("ResolveDatabaseID = %q, %v", id, err)
	}

	_, err = c.QueryDatabase(ctx, id)
	if !errors.Is(err, ErrDatabaseNotFound) {
		t.Fatalf("query error = %v, want ErrDatabaseNotFound", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "object_not_found" {
		t.Errorf("query error should keep the API error, got %v", err)
	}

	if _, err := c.RetrieveDatabase(ctx, id); !errors.Is(err, ErrDatabaseNotFound) {
		t.Errorf("retrieve error = %v, want ErrDatabaseNotFound", err)
	}

	// Other ids keep the plain upstream error.
	if _, err := c.RetrieveDatabase(ctx, "other"); errors.Is(err, ErrDatabaseNotFound) {
		t.Errorf("404 for an unconfigured id must not map to ErrDatabaseNotFound: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3 (404 is not retried)", got)
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	c := &Client{retryBaseDelay: time.Second}
	tests := []struct {
		attempt    int
		retryAfter string
		want       time.Duration
	}{
		{0, "", time.Second},
		{1, "", 2 * time.Second},
		{2, "", 4 * time.Second},
		{0, "3", 3 * time.Second},
		{0, "soon", time.Second},
		{0, "600", maxRetryAfter},
	}
	for _, tt := range tests {
		if got := c.backoff(tt.attempt, tt.retryAfter); got != tt.want {
			t.Errorf("backoff(%d, %q) = %v, want %v", tt.attempt, tt.retryAfter, got, tt.want)
		}
	}
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &APIError{Status: 429, Code: "rate_limited", Message: "slow"})
	if !IsRateLimited(err) {
		t.Error("wrapped 429 should be rate limited")
	}
	if IsRateLimited(errors.New("429")) {
		t.Error("plain error is not rate limited")
	}
	if got := (&APIError{Status: 500, Message: "boom"}).Error(); got != "notion: HTTP 500: boom" {
		t.Errorf("Error() = %q", got)
	}
}
