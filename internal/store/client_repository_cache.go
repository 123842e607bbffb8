package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/models"
)

type cacheRepository struct {
	*DB
	maxEntries int
	logger     *logger.Logger
}

// NewCacheRepository builds the durable cache tier. maxEntries bounds
// the table; Put evicts the oldest rows by insertion order once the
// bound is crossed.
func NewCacheRepository(db *DB, maxEntries int, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:         db,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

func (c *cacheRepository) Put(ctx context.Context, entry models.CacheEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertCacheEntryQuery(entry)
	if err != nil {
		return fmt.Errorf("failed to build upsert cache query: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Put").
			Str("key", entry.Key).
			Msg("failed to upsert cache entry")
		return fmt.Errorf("failed to upsert cache entry (key=%s): %w", entry.Key, err)
	}

	return c.evictOverCap(ctx)
}

func (c *cacheRepository) Get(ctx context.Context, key string) (models.CacheEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCacheEntryQuery(key)
	if err != nil {
		return models.CacheEntry{}, fmt.Errorf("failed to build get cache query: %w", err)
	}

	var (
		entry      models.CacheEntry
		payload    []byte
		ttlSeconds int64
	)
	row := c.DB.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(&entry.Key, &entry.Endpoint, &payload, &entry.StoredAt, &ttlSeconds)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.CacheEntry{}, ErrCacheMiss
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "cacheRepository.Get").
			Str("key", key).
			Msg("failed to scan cache entry row")
		return models.CacheEntry{}, fmt.Errorf("failed to scan cache entry row: %w", scanErr)
	}

	entry.Payload = json.RawMessage(payload)
	entry.TTL = time.Duration(ttlSeconds) * time.Second

	return entry, nil
}

func (c *cacheRepository) Invalidate(ctx context.Context, prefixOrKey string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInvalidateCacheQuery(prefixOrKey)
	if err != nil {
		return 0, fmt.Errorf("failed to build invalidate cache query: %w", err)
	}

	res, err := c.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Invalidate").
			Str("prefix", prefixOrKey).
			Msg("failed to invalidate cache entries")
		return 0, fmt.Errorf("failed to invalidate cache entries (prefix=%s): %w", prefixOrKey, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read invalidated row count: %w", err)
	}

	return affected, nil
}

func (c *cacheRepository) Count(ctx context.Context) (int, error) {
	query, args, err := buildCountCacheQuery()
	if err != nil {
		return 0, fmt.Errorf("failed to build count cache query: %w", err)
	}

	var count int
	if err = c.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}

	return count, nil
}

func (c *cacheRepository) evictOverCap(ctx context.Context) error {
	count, err := c.Count(ctx)
	if err != nil {
		return err
	}
	if count <= c.maxEntries {
		return nil
	}

	query, args, err := buildEvictOldestCacheQuery(count - c.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to build evict cache query: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to evict oldest cache entries: %w", err)
	}

	c.logger.Debug().
		Str("func", "cacheRepository.evictOverCap").
		Int("evicted", count-c.maxEntries).
		Msg("evicted oldest cache entries over capacity")

	return nil
}
