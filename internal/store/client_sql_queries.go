// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kris Dawg

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/KrisDawg/family-sync/models"
)

var pendingRequestColumns = []string{
	"id",
	"method",
	"endpoint",
	"body",
	"created_at",
	"retry_count",
	"status",
	"last_retry_at",
}

var cacheEntryColumns = []string{
	"key",
	"endpoint",
	"payload",
	"stored_at",
	"ttl_seconds",
}

func buildInsertPendingRequestQuery(req models.PendingRequest) (string, []any, error) {
	return sq.Insert("pending_requests").
		Columns(pendingRequestColumns[:7]...).
		Values(req.ID, req.Method, req.Endpoint, []byte(req.Body), req.CreatedAt, req.RetryCount, string(req.Status)).
		ToSql()
}

func buildNextPendingQuery(limit int) (string, []any, error) {
	return sq.Select(pendingRequestColumns...).
		From("pending_requests").
		Where(sq.Eq{"status": string(models.StatusPending)}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
}

func buildRemovePendingQuery(id string) (string, []any, error) {
	return sq.Delete("pending_requests").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildMarkFailedQuery(id string) (string, []any, error) {
	return sq.Update("pending_requests").
		Set("status", string(models.StatusFailed)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildIncrementRetryQuery(id string, at time.Time) (string, []any, error) {
	return sq.Update("pending_requests").
		Set("retry_count", sq.Expr("retry_count + 1")).
		Set("last_retry_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildListFailedQuery() (string, []any, error) {
	return sq.Select(pendingRequestColumns...).
		From("pending_requests").
		Where(sq.Eq{"status": string(models.StatusFailed)}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

func buildCountPendingQuery() (string, []any, error) {
	return sq.Select("COUNT(*)").
		From("pending_requests").
		Where(sq.Eq{"status": string(models.StatusPending)}).
		ToSql()
}

func buildUpsertCacheEntryQuery(entry models.CacheEntry) (string, []any, error) {
	return sq.Insert("api_cache").
		Options("OR REPLACE").
		Columns(cacheEntryColumns...).
		Values(entry.Key, entry.Endpoint, []byte(entry.Payload), entry.StoredAt, int64(entry.TTL/time.Second)).
		ToSql()
}

func buildGetCacheEntryQuery(key string) (string, []any, error) {
	return sq.Select(cacheEntryColumns...).
		From("api_cache").
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildInvalidateCacheQuery(prefixOrKey string) (string, []any, error) {
	return sq.Delete("api_cache").
		Where(sq.Or{
			sq.Eq{"key": prefixOrKey},
			sq.Like{"key": prefixOrKey + "%"},
		}).
		ToSql()
}

func buildCountCacheQuery() (string, []any, error) {
	return sq.Select("COUNT(*)").
		From("api_cache").
		ToSql()
}

// Oldest entries by insertion order go first; rowid is SQLite's
// monotonically assigned insertion sequence for this table.
func buildEvictOldestCacheQuery(excess int) (string, []any, error) {
	return sq.Delete("api_cache").
		Where(sq.Expr("key IN (SELECT key FROM api_cache ORDER BY rowid ASC LIMIT ?)", excess)).
		ToSql()
}
