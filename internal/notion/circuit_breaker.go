// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/momentmillionaer/internal/config"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/metrics"
)

// breakerName labels circuit breaker metrics and logs.
const breakerName = "notion-api"

// CircuitBreakerClient wraps Client with the circuit breaker pattern so a
// failing Notion API is not hammered by every incoming request.
//
// Configuration errors, missing databases and rate limits are not counted
// as failures: they are answered by the upstream and do not indicate an
// unavailable service. Rate limits already went through the client's
// backoff.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

var _ API = (*CircuitBreakerClient)(nil)
var _ API = (*Client)(nil)

// NewCircuitBreakerClient creates a Notion client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(cfg *config.NotionConfig) *CircuitBreakerClient {
	return wrapWithCircuitBreaker(NewClient(cfg))
}

func wrapWithCircuitBreaker(client *Client) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotConfigured) ||
				errors.Is(err, ErrDatabaseNotFound) ||
				errors.Is(err, context.Canceled) ||
				IsRateLimited(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   breakerName,
	}
}

// State returns the current breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// execute wraps a Notion API call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("notion unavailable: %w", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Configured reports whether the wrapped client has credentials.
func (cbc *CircuitBreakerClient) Configured() bool {
	return cbc.client.Configured()
}

// ResolveDatabaseID resolves the events database with circuit breaker protection.
func (cbc *CircuitBreakerClient) ResolveDatabaseID(ctx context.Context) (string, error) {
	return castResult[string](cbc.execute(func() (interface{}, error) {
		return cbc.client.ResolveDatabaseID(ctx)
	}))
}

// FindDatabase discovers a database by name with circuit breaker protection.
func (cbc *CircuitBreakerClient) FindDatabase(ctx context.Context, name string) (string, error) {
	return castResult[string](cbc.execute(func() (interface{}, error) {
		return cbc.client.FindDatabase(ctx, name)
	}))
}

// QueryDatabase queries all pages with circuit breaker protection.
func (cbc *CircuitBreakerClient) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	return castResult[[]Page](cbc.execute(func() (interface{}, error) {
		return cbc.client.QueryDatabase(ctx, databaseID)
	}))
}

// RetrieveDatabase fetches the schema with circuit breaker protection.
func (cbc *CircuitBreakerClient) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	return castResult[*Database](cbc.execute(func() (interface{}, error) {
		return cbc.client.RetrieveDatabase(ctx, databaseID)
	}))
}
