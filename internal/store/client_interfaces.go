package store

import (
	"context"

	"github.com/KrisDawg/family-sync/models"
)

// OutboxRepository is the durable FIFO queue of not-yet-confirmed
// mutations. Entries leave the queue only on confirmed success; failed
// entries are relabeled, never deleted, so they stay queryable.
type OutboxRepository interface {
	// Append persists a new entry at the back of the queue.
	Append(ctx context.Context, req models.PendingRequest) error

	// NextPending returns up to limit pending entries in strict
	// insertion order. Failed entries are excluded.
	NextPending(ctx context.Context, limit int) ([]models.PendingRequest, error)

	// Remove deletes a confirmed entry. Returns ErrNotFound if the id
	// does not exist.
	Remove(ctx context.Context, id string) error

	// MarkFailed flips an entry to the failed status without removing it.
	MarkFailed(ctx context.Context, id string) error

	// IncrementRetry bumps the retry counter and stamps the attempt time.
	IncrementRetry(ctx context.Context, id string) error

	// ListFailed returns all failed entries, oldest first.
	ListFailed(ctx context.Context) ([]models.PendingRequest, error)

	// CountPending returns the number of entries still awaiting replay.
	CountPending(ctx context.Context) (int, error)
}

// CacheRepository is the durable tier of the response cache. Expiry is
// the cache layer's concern; the repository stores and returns entries
// verbatim and only enforces the size cap.
type CacheRepository interface {
	// Put upserts an entry and evicts the oldest entries by insertion
	// order once the configured cap is exceeded.
	Put(ctx context.Context, entry models.CacheEntry) error

	// Get returns the entry for key, expired or not.
	// Returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) (models.CacheEntry, error)

	// Invalidate removes the exact key and every key sharing the given
	// prefix. Returns the number of removed entries.
	Invalidate(ctx context.Context, prefixOrKey string) (int64, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}
