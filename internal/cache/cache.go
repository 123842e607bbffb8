// Package cache implements the TTL-keyed response cache backing reads
// while the backend is slow or unreachable.
//
// The durable SQLite tier (via [store.CacheRepository]) is the source of
// truth: it survives restarts, is capped in size, and evicts the oldest
// entry by insertion order when the cap is exceeded. A small in-memory
// LRU tier fronts it so repeated reads of the same endpoint do not hit
// disk. Expiry is lazy: expired rows stay until overwritten or evicted,
// they are just unreadable through Get.
//
// Local persistence failures degrade to cache-miss behavior and are
// logged; they never fail the caller.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/internal/store"
	"github.com/KrisDawg/family-sync/models"
)

// ErrMiss is returned when no readable entry exists for a key.
var ErrMiss = errors.New("cache miss")

// ResponseCache is the two-tier read cache. Safe for concurrent use:
// the hot tier is internally synchronized and the durable tier is a
// database handle.
type ResponseCache struct {
	repo   store.CacheRepository
	hot    *lru.Cache[string, models.CacheEntry]
	logger *logger.Logger

	now func() time.Time
}

// New builds a ResponseCache over the durable repository with an
// in-memory hot tier of hotEntries slots.
func New(repo store.CacheRepository, hotEntries int, log *logger.Logger) (*ResponseCache, error) {
	hot, err := lru.New[string, models.CacheEntry](hotEntries)
	if err != nil {
		return nil, err
	}

	return &ResponseCache{
		repo:   repo,
		hot:    hot,
		logger: log,
		now:    time.Now,
	}, nil
}

// Get returns the payload for key, or ErrMiss when the entry is absent
// or expired.
func (c *ResponseCache) Get(ctx context.Context, key string) (json.RawMessage, error) {
	entry, err := c.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry.Expired(c.now()) {
		return nil, ErrMiss
	}
	return entry.Payload, nil
}

// GetStale returns the payload for key even when the entry has expired.
// Used as the fallback when a live call fails: stale data beats no data
// for an offline household view.
func (c *ResponseCache) GetStale(ctx context.Context, key string) (json.RawMessage, error) {
	entry, err := c.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	return entry.Payload, nil
}

// Put stores a read result under key with the given lifetime. A durable
// write failure is logged and swallowed; the hot tier still serves the
// entry for the life of the process.
func (c *ResponseCache) Put(ctx context.Context, key, endpoint string, payload json.RawMessage, ttl time.Duration) {
	entry := models.CacheEntry{
		Key:      key,
		Endpoint: endpoint,
		Payload:  payload,
		StoredAt: c.now(),
		TTL:      ttl,
	}

	c.hot.Add(key, entry)

	if err := c.repo.Put(ctx, entry); err != nil {
		c.logger.Warn().Err(err).
			Str("key", key).
			Msg("durable cache write failed, entry kept in memory only")
	}
}

// Invalidate removes the exact key and every key sharing the prefix from
// both tiers. Returns the number of durable entries removed.
func (c *ResponseCache) Invalidate(ctx context.Context, prefixOrKey string) int64 {
	for _, key := range c.hot.Keys() {
		if key == prefixOrKey || hasPrefix(key, prefixOrKey) {
			c.hot.Remove(key)
		}
	}

	affected, err := c.repo.Invalidate(ctx, prefixOrKey)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("prefix", prefixOrKey).
			Msg("durable cache invalidation failed")
		return 0
	}
	return affected
}

func (c *ResponseCache) lookup(ctx context.Context, key string) (models.CacheEntry, error) {
	if entry, ok := c.hot.Get(key); ok {
		return entry, nil
	}

	entry, err := c.repo.Get(ctx, key)
	if errors.Is(err, store.ErrCacheMiss) {
		return models.CacheEntry{}, ErrMiss
	}
	if err != nil {
		// degrade to miss, never block the caller on local storage
		c.logger.Warn().Err(err).
			Str("key", key).
			Msg("durable cache read failed")
		return models.CacheEntry{}, ErrMiss
	}

	c.hot.Add(key, entry)
	return entry, nil
}

func hasPrefix(key, prefix string) bool {
	return len(key) >= len(prefix) && key[:len(prefix)] == prefix
}
