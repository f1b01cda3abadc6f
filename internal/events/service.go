// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package events

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/momentmillionaer/internal/cache"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/metrics"
	"github.com/tomtom215/momentmillionaer/internal/models"
	"github.com/tomtom215/momentmillionaer/internal/notion"
)

// Cache keys of the served resources. Backups live at cache.BackupKey(key).
const (
	KeyEvents     = "events"
	KeyCategories = "categories"
	KeyAudiences  = "audiences"
)

// Source is the upstream used by the service.
type Source interface {
	Configured() bool
	ResolveDatabaseID(ctx context.Context) (string, error)
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
	RetrieveDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
}

// Config holds the service tuning knobs.
type Config struct {
	TTL              time.Duration
	BackupTTL        time.Duration
	AudienceProperty string
}

// Service resolves API resources through the cache and the upstream.
//
// Thread Safety: Safe for concurrent use.
type Service struct {
	cache      cache.Cacher
	source     Source
	normalizer *notion.Normalizer
	cfg        Config

	group singleflight.Group

	dbMu       sync.Mutex
	databaseID string
}

// NewService creates the service. The cache is shared with nothing else
// that writes the same keys.
func NewService(c cache.Cacher, source Source, normalizer *notion.Normalizer, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.BackupTTL < cfg.TTL {
		cfg.BackupTTL = 24 * time.Hour
	}
	return &Service{
		cache:      c,
		source:     source,
		normalizer: normalizer,
		cfg:        cfg,
	}
}

// Configured reports whether the upstream credentials are present.
func (s *Service) Configured() bool {
	return s.source.Configured()
}

// Events returns all normalized events.
func (s *Service) Events(ctx context.Context) (Result[[]models.Event], error) {
	if !s.source.Configured() {
		return Result[[]models.Event]{}, notion.ErrNotConfigured
	}
	res, err := readThrough(ctx, s, KeyEvents, false, s.fetchEvents)
	if err != nil {
		return res, fmt.Errorf("failed to load events: %w", err)
	}
	return res, nil
}

// Categories returns the sorted unique categories of all events.
// A degraded events result yields a degraded categories result that is not
// written to the cache.
func (s *Service) Categories(ctx context.Context) (Result[[]string], error) {
	if !s.source.Configured() {
		return Result[[]string]{}, notion.ErrNotConfigured
	}
	res, err := readThrough(ctx, s, KeyCategories, false, func(ctx context.Context) (fetched[[]string], error) {
		evs, err := s.Events(ctx)
		if err != nil {
			return fetched[[]string]{}, err
		}
		return fetched[[]string]{
			data:        models.UniqueCategories(evs.Data),
			degraded:    evs.Fallback,
			tier:        evs.Tier,
			rateLimited: evs.RateLimited,
		}, nil
	})
	if err != nil {
		return res, fmt.Errorf("failed to load categories: %w", err)
	}
	return res, nil
}

// Audiences returns the options of the audience property. refresh bypasses
// the fresh cache. It never fails: total failure yields an empty list.
func (s *Service) Audiences(ctx context.Context, refresh bool) Result[[]string] {
	empty := Result[[]string]{Data: []string{}}
	if !s.source.Configured() {
		logging.Ctx(ctx).Warn().Msg("Audiences requested without Notion credentials")
		return empty
	}
	res, err := readThrough(ctx, s, KeyAudiences, refresh, s.fetchAudiences)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load audiences, returning empty list")
		return empty
	}
	if res.Data == nil {
		res.Data = []string{}
	}
	return res
}

// Sync clears every cache entry and refetches events from the upstream.
// It returns the number of events fetched.
func (s *Service) Sync(ctx context.Context) (int, error) {
	if !s.source.Configured() {
		metrics.RecordSync(notion.ErrNotConfigured)
		return 0, notion.ErrNotConfigured
	}
	if err := s.cache.Clear(ctx); err != nil {
		metrics.RecordSync(err)
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	s.forgetDatabase()

	res, err := s.Events(ctx)
	metrics.RecordSync(err)
	if err != nil {
		return 0, err
	}
	logging.Ctx(ctx).Info().Int("event_count", len(res.Data)).Msg("Manual sync completed")
	return len(res.Data), nil
}

func (s *Service) fetchEvents(ctx context.Context) (fetched[[]models.Event], error) {
	id, err := s.resolveDatabase(ctx)
	if err != nil {
		return fetched[[]models.Event]{}, err
	}
	pages, err := s.source.QueryDatabase(ctx, id)
	if err != nil {
		s.checkStaleDatabase(err)
		return fetched[[]models.Event]{}, err
	}
	evs := s.normalizer.NormalizeAll(pages)
	logging.Ctx(ctx).Info().Int("event_count", len(evs)).Msg("Fetched events from Notion")
	return fetched[[]models.Event]{data: evs}, nil
}

func (s *Service) fetchAudiences(ctx context.Context) (fetched[[]string], error) {
	id, err := s.resolveDatabase(ctx)
	if err != nil {
		return fetched[[]string]{}, err
	}
	db, err := s.source.RetrieveDatabase(ctx, id)
	if err != nil {
		s.checkStaleDatabase(err)
		return fetched[[]string]{}, err
	}
	options, ok := db.Options(s.cfg.AudienceProperty)
	if !ok {
		logging.Ctx(ctx).Warn().Str("property", s.cfg.AudienceProperty).Msg("Audience property missing from database schema")
		options = []string{}
	}
	return fetched[[]string]{data: options}, nil
}

// resolveDatabase returns the cached database id or resolves it.
func (s *Service) resolveDatabase(ctx context.Context) (string, error) {
	s.dbMu.Lock()
	id := s.databaseID
	s.dbMu.Unlock()
	if id != "" {
		return id, nil
	}

	id, err := s.source.ResolveDatabaseID(ctx)
	if err != nil {
		return "", err
	}
	s.dbMu.Lock()
	s.databaseID = id
	s.dbMu.Unlock()
	return id, nil
}

func (s *Service) forgetDatabase() {
	s.dbMu.Lock()
	s.databaseID = ""
	s.dbMu.Unlock()
}

// checkStaleDatabase drops the cached database id when the upstream no
// longer knows it, so the next request rediscovers it.
func (s *Service) checkStaleDatabase(err error) {
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		s.forgetDatabase()
	}
}
