// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kris Dawg

package config

import (
	"time"

	"github.com/KrisDawg/family-sync/models"
)

// StructuredConfig is the top-level configuration container for the
// family-sync client. It is populated by merging values from command-line
// flags, environment variables, and an optional JSON file, with built-in
// defaults filling whatever remains unset.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds the backend address and per-request timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Probe holds reachability-check settings for the connectivity
	// monitor.
	Probe Probe `envPrefix:"PROBE_"`

	// Cache holds response-cache sizing and lifetime settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Outbox holds retry and drain settings for queued mutations.
	Outbox Outbox `envPrefix:"OUTBOX_"`

	// Storage holds local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// jsonFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below flags and env.
	jsonFilePath string
}

// Server holds backend connection settings.
type Server struct {
	// BaseURL is the root of the backend REST API,
	// e.g. "http://192.168.1.10:5000".
	BaseURL string `env:"ADDRESS"`

	// RequestTimeout bounds a whole request/response exchange.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ConnectTimeout bounds the connection attempt alone.
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Probe holds connectivity-monitor settings.
type Probe struct {
	// Path is the reachability endpoint probed on every tick,
	// relative to Server.BaseURL.
	Path string `env:"PATH"`

	// Interval is the time between probes.
	Interval time.Duration `env:"INTERVAL"`

	// Timeout bounds a single probe; it is deliberately shorter than
	// Server.RequestTimeout so a dead backend is detected quickly.
	Timeout time.Duration `env:"TIMEOUT"`
}

// Cache holds response-cache settings.
type Cache struct {
	// MaxEntries caps the durable cache; the oldest entry by insertion
	// order is evicted when the cap is exceeded.
	MaxEntries int `env:"MAX_ENTRIES"`

	// HotEntries caps the in-memory tier in front of the durable cache.
	HotEntries int `env:"HOT_ENTRIES"`

	// DefaultTTL is the lifetime for endpoints without a per-resource
	// entry. A negative value disables expiry.
	DefaultTTL time.Duration `env:"DEFAULT_TTL"`

	// ResourceTTLs sets the lifetime per resource root, as
	// "inventory:30m,notifications:10m" in the environment.
	ResourceTTLs map[string]time.Duration `env:"RESOURCE_TTLS"`
}

// Outbox holds replay settings for queued mutations.
type Outbox struct {
	// MaxRetries is the retry budget per entry for transient failures;
	// an entry is marked failed once it is exhausted.
	MaxRetries int `env:"MAX_RETRIES"`

	// DrainBatch caps how many entries a single drain cycle replays.
	DrainBatch int `env:"DRAIN_BATCH"`
}

// Storage holds local persistence settings.
type Storage struct {
	// DB holds the SQLite settings for the cache and outbox tables.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite file path (or ":memory:") backing the durable
	// cache and outbox.
	DSN string `env:"DSN"`
}

// defaults returns the built-in configuration. Timeouts and the retry
// budget mirror the values the mobile client has always shipped with.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			BaseURL:        "http://localhost:5000",
			RequestTimeout: 8 * time.Second,
			ConnectTimeout: 5 * time.Second,
		},
		Probe: Probe{
			Path:     "/api/health",
			Interval: 5 * time.Second,
			Timeout:  2 * time.Second,
		},
		Cache: Cache{
			MaxEntries:   512,
			HotEntries:   128,
			DefaultTTL:   models.DefaultTTL,
			ResourceTTLs: models.DefaultResourceTTLs(),
		},
		Outbox: Outbox{
			MaxRetries: 3,
			DrainBatch: 10,
		},
		Storage: Storage{
			DB: DB{DSN: "mobile_cache.db"},
		},
	}
}

// GetStructuredConfig builds the merged configuration. Priority, highest
// first: environment variables, command-line flags, JSON file, defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
