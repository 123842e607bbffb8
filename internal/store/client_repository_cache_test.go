package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/models"
)

func newTestCacheRepo(t *testing.T, maxEntries int) (*cacheRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &cacheRepository{
		DB:         &DB{DB: db, logger: l},
		maxEntries: maxEntries,
		logger:     l,
	}
	return repo, mock, db
}

func TestCachePut_UnderCap_NoEviction(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t, 512)
	defer db.Close()

	entry := models.CacheEntry{
		Key:      "inventory:",
		Endpoint: "inventory",
		Payload:  json.RawMessage(`[{"name":"Milk"}]`),
		StoredAt: time.Now(),
		TTL:      30 * time.Minute,
	}

	mock.ExpectExec("INSERT OR REPLACE INTO api_cache").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	require.NoError(t, repo.Put(context.Background(), entry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCachePut_OverCap_EvictsOldest(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t, 2)
	defer db.Close()

	mock.ExpectExec("INSERT OR REPLACE INTO api_cache").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("DELETE FROM api_cache").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), models.CacheEntry{Key: "bills:"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGet_Hit(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t, 512)
	defer db.Close()

	stored := time.Now().Add(-time.Minute)
	rows := sqlmock.
		NewRows([]string{"key", "endpoint", "payload", "stored_at", "ttl_seconds"}).
		AddRow("inventory:", "inventory", []byte(`[]`), stored, int64(1800))

	mock.ExpectQuery("SELECT .+ FROM api_cache").
		WithArgs("inventory:").
		WillReturnRows(rows)

	entry, err := repo.Get(context.Background(), "inventory:")
	require.NoError(t, err)
	assert.Equal(t, "inventory:", entry.Key)
	assert.Equal(t, 30*time.Minute, entry.TTL)
	assert.JSONEq(t, `[]`, string(entry.Payload))
}

func TestCacheGet_Miss(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t, 512)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM api_cache").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheInvalidate_ReturnsAffected(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t, 512)
	defer db.Close()

	mock.ExpectExec("DELETE FROM api_cache").
		WithArgs("inventory", "inventory%").
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.Invalidate(context.Background(), "inventory")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}
