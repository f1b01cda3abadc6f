// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Notion   NotionConfig   `koanf:"notion"`
	Cache    CacheConfig    `koanf:"cache"`
	Sync     SyncConfig     `koanf:"sync"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Timezone    string        `koanf:"timezone"`
	Environment string        `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Location resolves Timezone, falling back to UTC when the zone database
// does not know it.
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NotionConfig holds the Notion integration settings.
//
// Environment Variables:
//   - NOTION_TOKEN: internal integration secret
//   - NOTION_PAGE_URL: URL of the page that contains the events database
//   - NOTION_DATABASE_ID: optional, bypasses discovery by name
type NotionConfig struct {
	Token             string        `koanf:"token"`
	PageURL           string        `koanf:"page_url"`
	DatabaseID        string        `koanf:"database_id"`
	DatabaseName      string        `koanf:"database_name"`
	AudienceProperty  string        `koanf:"audience_property"`
	BaseURL           string        `koanf:"base_url"`
	Version           string        `koanf:"version"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	TrustedImageHosts []string      `koanf:"trusted_image_hosts"`
}

// Configured reports whether both credentials needed to reach the events
// database are present.
func (n NotionConfig) Configured() bool {
	return n.Token != "" && (n.PageURL != "" || n.DatabaseID != "")
}

// CacheConfig selects and tunes the cache store.
type CacheConfig struct {
	// Driver is one of memory, redis, nats.
	Driver         string        `koanf:"driver"`
	TTL            time.Duration `koanf:"ttl"`
	BackupTTL      time.Duration `koanf:"backup_ttl"`
	StaleRetention time.Duration `koanf:"stale_retention"`
	SweepInterval  time.Duration `koanf:"sweep_interval"`
	Prefix         string        `koanf:"prefix"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	NATSURL    string `koanf:"nats_url"`
	NATSBucket string `koanf:"nats_bucket"`
}

// SyncConfig controls the background sync monitor.
type SyncConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
func Load() (*Config, error) {
	return LoadWithKoanf()
}
