// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/momentmillionaer/internal/config"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/metrics"
)

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// pageSize is the maximum page size accepted by the Notion API.
const pageSize = 100

// maxRetryAfter caps a server-provided Retry-After delay.
const maxRetryAfter = 60 * time.Second

// API is the set of upstream operations used by the event service and the
// sync monitor. Implemented by Client and CircuitBreakerClient.
type API interface {
	Configured() bool
	ResolveDatabaseID(ctx context.Context) (string, error)
	FindDatabase(ctx context.Context, name string) (string, error)
	QueryDatabase(ctx context.Context, databaseID string) ([]Page, error)
	RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error)
}

// Client handles communication with the Notion REST API.
//
// Thread Safety: Safe for concurrent use. Requests share one rate limiter.
type Client struct {
	baseURL      string
	token        string
	version      string
	pageID       string
	databaseID   string
	databaseName string

	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a client from the Notion configuration section.
// A missing or unparseable page URL leaves the client unconfigured unless a
// database id is set.
func NewClient(cfg *config.NotionConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	pageID, _ := ParsePageID(cfg.PageURL)

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.Token,
		version:      cfg.Version,
		pageID:       pageID,
		databaseID:   cfg.DatabaseID,
		databaseName: cfg.DatabaseName,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(rps), burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: time.Second,
	}
}

// Configured reports whether the client has a token and a way to locate the
// events database.
func (c *Client) Configured() bool {
	return c.token != "" && (c.pageID != "" || c.databaseID != "")
}

var pageIDPattern = regexp.MustCompile(`([0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12})(?:[?#].*)?$`)

// ParsePageID extracts the trailing 32-hex page id from a Notion page URL
// and returns it in dashed UUID form.
//
//	ParsePageID("https://www.notion.so/Events-0123456789abcdef0123456789abcdef")
//	// "01234567-89ab-cdef-0123-456789abcdef"
func ParsePageID(pageURL string) (string, error) {
	m := pageIDPattern.FindStringSubmatch(strings.TrimSpace(pageURL))
	if m == nil {
		return "", fmt.Errorf("no page id found in %q", pageURL)
	}
	raw := strings.ToLower(strings.ReplaceAll(m[1], "-", ""))
	return raw[0:8] + "-" + raw[8:12] + "-" + raw[12:16] + "-" + raw[16:20] + "-" + raw[20:32], nil
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}

// doRequest performs one API call. Requests are paced by the limiter. HTTP
// 429 and 5xx responses are retried with exponential backoff (1s, 2s, 4s,
// ...) or the Retry-After delay. When retries are exhausted the last error
// response is returned as *APIError.
func (c *Client) doRequest(ctx context.Context, operation, method, path string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var body io.Reader = http.NoBody
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Notion-Version", c.version)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.RecordNotionRequest(operation, 0, time.Since(start))
			return fmt.Errorf("%s request failed: %w", operation, err)
		}
		metrics.RecordNotionRequest(operation, resp.StatusCode, time.Since(start))

		if resp.StatusCode == http.StatusOK {
			err = json.NewDecoder(resp.Body).Decode(out)
			_ = resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to decode %s response: %w", operation, err)
			}
			return nil
		}

		apiErr := parseAPIError(resp)
		retryAfter := resp.Header.Get("Retry-After")
		_ = resp.Body.Close()

		if !retryable(resp.StatusCode) || attempt >= c.maxRetries {
			return apiErr
		}

		delay := c.backoff(attempt, retryAfter)
		metrics.NotionRetries.Inc()
		logging.Ctx(ctx).Warn().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Notion request throttled or failed, backing off")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// retryable reports whether a response status is worth another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// backoff returns the wait before retry number attempt+1.
func (c *Client) backoff(attempt int, retryAfter string) time.Duration {
	delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		}
	}
	if delay > maxRetryAfter {
		delay = maxRetryAfter
	}
	return delay
}

// parseAPIError builds an APIError from a non-2xx response. The Notion
// error envelope is used when present, the raw body otherwise.
func parseAPIError(resp *http.Response) *APIError {
	body := readBodyForError(resp.Body)
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}
