package store

import (
	"context"
	"fmt"

	"github.com/KrisDawg/family-sync/internal/config"
	"github.com/KrisDawg/family-sync/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// Outbox is the durable queue of not-yet-confirmed mutations.
	Outbox OutboxRepository

	// Cache is the durable tier of the response cache.
	Cache CacheRepository
}

// NewClientStorages initialises the client storage layer:
//  1. Opens an SQLite connection to cfg.Storage.DB.DSN, creating the
//     database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs the outbox and cache repositories on the shared handle.
func NewClientStorages(cfg *config.ClientConfig, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Outbox: NewOutboxRepository(db, logger),
		Cache:  NewCacheRepository(db, cfg.Cache.MaxEntries, logger),
	}, nil
}
