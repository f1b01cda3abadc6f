// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is well formed.
// Missing Notion credentials are allowed; see the package documentation.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateNotion(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("TZ_NAME is not a known timezone: %w", err)
	}
	return nil
}

func (c *Config) validateNotion() error {
	if err := validateHTTPURL(c.Notion.BaseURL, "NOTION_BASE_URL"); err != nil {
		return err
	}
	if c.Notion.PageURL != "" {
		if err := validatePageURL(c.Notion.PageURL); err != nil {
			return fmt.Errorf("NOTION_PAGE_URL is invalid: %w", err)
		}
	}
	if strings.TrimSpace(c.Notion.DatabaseName) == "" && c.Notion.DatabaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_NAME must not be empty when NOTION_DATABASE_ID is unset")
	}
	if c.Notion.MaxRetries < 0 || c.Notion.MaxRetries > 10 {
		return fmt.Errorf("NOTION_MAX_RETRIES must be between 0 and 10")
	}
	if c.Notion.RequestsPerSecond <= 0 {
		return fmt.Errorf("NOTION_RPS must be positive")
	}
	if c.Notion.Timeout <= 0 {
		return fmt.Errorf("NOTION_TIMEOUT must be positive")
	}
	return nil
}

// validCacheDrivers defines the supported cache stores.
var validCacheDrivers = map[string]bool{
	"memory": true,
	"redis":  true,
	"nats":   true,
}

func (c *Config) validateCache() error {
	if !validCacheDrivers[c.Cache.Driver] {
		return fmt.Errorf("CACHE_DRIVER must be one of: memory, redis, nats")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.BackupTTL < c.Cache.TTL {
		return fmt.Errorf("CACHE_BACKUP_TTL (%v) must not be shorter than CACHE_TTL (%v)", c.Cache.BackupTTL, c.Cache.TTL)
	}
	if c.Cache.StaleRetention < 0 {
		return fmt.Errorf("CACHE_STALE_RETENTION must not be negative")
	}
	switch c.Cache.Driver {
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_DRIVER=redis")
		}
	case "nats":
		if err := validateNATSURL(c.Cache.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
		if c.Cache.NATSBucket == "" {
			return fmt.Errorf("NATS_BUCKET is required when CACHE_DRIVER=nats")
		}
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.Enabled && c.Sync.Interval < 10*time.Second {
		return fmt.Errorf("SYNC_INTERVAL must be at least 10s, got %v", c.Sync.Interval)
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}
