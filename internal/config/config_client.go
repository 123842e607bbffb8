package config

import (
	"fmt"
	"time"
)

// ClientGateway holds network settings used by the API gateway.
type ClientGateway struct {
	// BaseURL is the backend REST API root.
	BaseURL string
	// RequestTimeout is the timeout for a full outbound request.
	RequestTimeout time.Duration
	// ConnectTimeout is the timeout for the connection attempt.
	ConnectTimeout time.Duration
}

// ClientProbe holds connectivity monitor settings.
type ClientProbe struct {
	// Path is the reachability endpoint relative to the API root.
	Path string
	// Interval is the time between probes.
	Interval time.Duration
	// Timeout bounds a single probe.
	Timeout time.Duration
}

// ClientCache holds response cache sizing and lifetimes.
type ClientCache struct {
	// MaxEntries caps the durable cache.
	MaxEntries int
	// HotEntries caps the in-memory tier.
	HotEntries int
	// DefaultTTL is the lifetime for endpoints without a per-resource
	// entry.
	DefaultTTL time.Duration
	// ResourceTTLs sets the lifetime per resource root.
	ResourceTTLs map[string]time.Duration
}

// ClientOutbox holds outbox replay settings.
type ClientOutbox struct {
	// MaxRetries is the per-entry retry budget.
	MaxRetries int
	// DrainBatch caps one drain cycle.
	DrainBatch int
}

// ClientStorage groups local persistence settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Gateway contains transport settings.
	Gateway ClientGateway
	// Probe contains connectivity monitor settings.
	Probe ClientProbe
	// Cache contains response cache settings.
	Cache ClientCache
	// Outbox contains replay settings.
	Outbox ClientOutbox
	// Storage contains local persistence settings.
	Storage ClientStorage
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return &ClientConfig{
		Gateway: ClientGateway{
			BaseURL:        cfg.Server.BaseURL,
			RequestTimeout: cfg.Server.RequestTimeout,
			ConnectTimeout: cfg.Server.ConnectTimeout,
		},
		Probe: ClientProbe{
			Path:     cfg.Probe.Path,
			Interval: cfg.Probe.Interval,
			Timeout:  cfg.Probe.Timeout,
		},
		Cache: ClientCache{
			MaxEntries:   cfg.Cache.MaxEntries,
			HotEntries:   cfg.Cache.HotEntries,
			DefaultTTL:   cfg.Cache.DefaultTTL,
			ResourceTTLs: cfg.Cache.ResourceTTLs,
		},
		Outbox: ClientOutbox{
			MaxRetries: cfg.Outbox.MaxRetries,
			DrainBatch: cfg.Outbox.DrainBatch,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
	}, nil
}
