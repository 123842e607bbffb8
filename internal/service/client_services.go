package service

import (
	"fmt"

	"github.com/KrisDawg/family-sync/internal/cache"
	"github.com/KrisDawg/family-sync/internal/config"
	"github.com/KrisDawg/family-sync/internal/connectivity"
	"github.com/KrisDawg/family-sync/internal/gateway"
	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/internal/store"
	"github.com/KrisDawg/family-sync/models"
)

type ClientServices struct {
	Engine    SyncEngine
	Resources *Resources
	DrainJob  ClientDrainJob
}

func NewClientServices(
	storages *store.ClientStorages,
	gw gateway.Gateway,
	monitor *connectivity.Monitor,
	cfg *config.ClientConfig,
	log *logger.Logger,
) (*ClientServices, error) {
	responseCache, err := cache.New(storages.Cache, cfg.Cache.HotEntries, log)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}

	engine := NewSyncEngine(
		storages.Outbox,
		responseCache,
		gw,
		monitor,
		models.TTLPolicy{
			Default:   cfg.Cache.DefaultTTL,
			Resources: cfg.Cache.ResourceTTLs,
		},
		cfg.Outbox.MaxRetries,
		cfg.Outbox.DrainBatch,
		log,
	)

	return &ClientServices{
		Engine:    engine,
		Resources: NewResources(engine),
		DrainJob:  NewDrainJob(engine, monitor, storages.Outbox, 0, log),
	}, nil
}
