// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/momentmillionaer/config.yaml",
	"/etc/momentmillionaer/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultTrustedImageHosts are hosts whose attachments are treated as images
// even when the URL carries no file extension (signed S3 URLs, Unsplash).
var DefaultTrustedImageHosts = []string{
	"prod-files-secure.s3.us-west-2.amazonaws.com",
	"s3.us-west-2.amazonaws.com",
	"file.notion.so",
	"img.notionusercontent.com",
	"images.unsplash.com",
	"www.notion.so",
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3001,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Timezone:    "Europe/Berlin",
			Environment: "development",
		},
		Notion: NotionConfig{
			DatabaseName:      "Veranstaltungen",
			AudienceProperty:  "Zielgruppe",
			BaseURL:           "https://api.notion.com",
			Version:           "2022-06-28",
			Timeout:           30 * time.Second,
			MaxRetries:        2,
			RequestsPerSecond: 3,
			TrustedImageHosts: DefaultTrustedImageHosts,
		},
		Cache: CacheConfig{
			Driver:         "memory",
			TTL:            30 * time.Minute,
			BackupTTL:      24 * time.Hour,
			StaleRetention: 72 * time.Hour,
			SweepInterval:  10 * time.Minute,
			Prefix:         "momentmillionaer",
			RedisAddr:      "localhost:6379",
			NATSURL:        "nats://127.0.0.1:4222",
			NATSBucket:     "momentmillionaer",
		},
		Sync: SyncConfig{
			Enabled:  true,
			Interval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// NOTION_TOKEN -> notion.token, CACHE_TTL -> cache.ttl, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"notion.trusted_image_hosts",
}

// processSliceFields splits comma-separated strings for known slice fields.
// Values coming from YAML are already slices and left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored so the process environment cannot leak
// into the configuration.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"port":         "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"tz_name":      "server.timezone",
	"environment":  "server.environment",

	"notion_token":             "notion.token",
	"notion_page_url":          "notion.page_url",
	"notion_database_id":       "notion.database_id",
	"notion_database_name":     "notion.database_name",
	"notion_audience_property": "notion.audience_property",
	"notion_base_url":          "notion.base_url",
	"notion_version":           "notion.version",
	"notion_timeout":           "notion.timeout",
	"notion_max_retries":       "notion.max_retries",
	"notion_rps":               "notion.requests_per_second",
	"notion_trusted_hosts":     "notion.trusted_image_hosts",

	"cache_driver":          "cache.driver",
	"cache_ttl":             "cache.ttl",
	"cache_backup_ttl":      "cache.backup_ttl",
	"cache_stale_retention": "cache.stale_retention",
	"cache_sweep_interval":  "cache.sweep_interval",
	"cache_prefix":          "cache.prefix",
	"redis_addr":            "cache.redis_addr",
	"redis_password":        "cache.redis_password",
	"redis_db":              "cache.redis_db",
	"nats_url":              "cache.nats_url",
	"nats_bucket":           "cache.nats_bucket",

	"sync_enabled":  "sync.enabled",
	"sync_interval": "sync.interval",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - NOTION_TOKEN -> notion.token
//   - CACHE_BACKUP_TTL -> cache.backup_ttl
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
