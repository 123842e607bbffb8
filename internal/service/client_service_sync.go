package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KrisDawg/family-sync/internal/cache"
	"github.com/KrisDawg/family-sync/internal/gateway"
	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/internal/store"
	"github.com/KrisDawg/family-sync/models"
)

type syncEngine struct {
	outbox       store.OutboxRepository
	cache        *cache.ResponseCache
	gateway      gateway.Gateway
	connectivity ConnectivitySource
	logger       *logger.Logger

	ttl        models.TTLPolicy
	maxRetries int
	drainBatch int

	// drainMu is the Idle/Draining state: holding it is Draining.
	drainMu sync.Mutex

	lastSyncMu sync.RWMutex
	lastSync   *time.Time
}

// NewSyncEngine wires the sync engine over its collaborators. ttl
// resolves cache lifetimes per endpoint; maxRetries is the per-entry
// budget for transient failures; drainBatch caps how many entries one
// drain cycle loads.
func NewSyncEngine(
	outbox store.OutboxRepository,
	responseCache *cache.ResponseCache,
	gw gateway.Gateway,
	connectivity ConnectivitySource,
	ttl models.TTLPolicy,
	maxRetries, drainBatch int,
	log *logger.Logger,
) SyncEngine {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if drainBatch <= 0 {
		drainBatch = 10
	}

	return &syncEngine{
		outbox:       outbox,
		cache:        responseCache,
		gateway:      gw,
		connectivity: connectivity,
		logger:       log,
		ttl:          ttl,
		maxRetries:   maxRetries,
		drainBatch:   drainBatch,
	}
}

func (e *syncEngine) Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	key := cache.Key(endpoint, params)

	if e.connectivity.State() == models.ConnectivityOffline {
		return e.fetchFromCache(ctx, key)
	}

	resp, err := e.gateway.Execute(ctx, gateway.Call{
		Method:   "GET",
		Endpoint: endpoint,
		Params:   params,
	})
	if err == nil {
		e.cache.Put(ctx, key, endpoint, resp.Payload, e.ttl.TTL(endpoint))
		return resp.Payload, nil
	}

	if gateway.IsTransient(err) {
		// nominally online but the call failed: stale beats nothing
		if payload, cacheErr := e.cache.GetStale(ctx, key); cacheErr == nil {
			e.logger.Debug().
				Str("endpoint", endpoint).
				Msg("live fetch failed, serving cached value")
			return payload, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", endpoint, errors.Join(err, ErrNoCachedData))
	}

	return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
}

func (e *syncEngine) fetchFromCache(ctx context.Context, key string) (json.RawMessage, error) {
	if payload, err := e.cache.Get(ctx, key); err == nil {
		return payload, nil
	}
	if payload, err := e.cache.GetStale(ctx, key); err == nil {
		return payload, nil
	}
	return nil, ErrNoCachedData
}

func (e *syncEngine) Mutate(ctx context.Context, method, endpoint string, body json.RawMessage) (models.MutationResult, error) {
	if len(body) > 0 && !json.Valid(body) {
		return models.MutationResult{}, fmt.Errorf("mutate %s %s: %w", method, endpoint, gateway.ErrSerialization)
	}

	id := newRequestID()

	if e.connectivity.State() == models.ConnectivityOffline {
		if err := e.enqueue(ctx, id, method, endpoint, body); err != nil {
			return models.MutationResult{}, err
		}
		return models.MutationResult{Outcome: models.MutationPending, RequestID: id}, nil
	}

	resp, err := e.gateway.Execute(ctx, gateway.Call{
		Method:         method,
		Endpoint:       endpoint,
		Body:           body,
		IdempotencyKey: id,
	})
	if err == nil {
		e.cache.Invalidate(ctx, models.ResourceRoot(endpoint))
		return models.MutationResult{
			Outcome:   models.MutationApplied,
			RequestID: id,
			Payload:   resp.Payload,
		}, nil
	}

	// a 4xx can never succeed as-is; tell the caller now instead of
	// queueing a write that is doomed to fail on replay
	if !gateway.IsTransient(err) {
		return models.MutationResult{}, fmt.Errorf("mutate %s %s: %w", method, endpoint, err)
	}

	if enqErr := e.enqueue(ctx, id, method, endpoint, body); enqErr != nil {
		return models.MutationResult{}, enqErr
	}
	return models.MutationResult{Outcome: models.MutationPending, RequestID: id}, nil
}

func (e *syncEngine) enqueue(ctx context.Context, id, method, endpoint string, body json.RawMessage) error {
	req := models.PendingRequest{
		ID:        id,
		Method:    method,
		Endpoint:  endpoint,
		Body:      body,
		CreatedAt: time.Now().UTC(),
		Status:    models.StatusPending,
	}

	if err := e.outbox.Append(ctx, req); err != nil {
		// a lost queued write is a correctness defect, surface it
		return fmt.Errorf("queue mutation %s %s: %w", method, endpoint, err)
	}

	e.logger.Info().
		Str("id", id).
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("mutation queued for replay")

	return nil
}

// replayOutcome classifies what happened to one outbox entry.
type replayOutcome int

const (
	replayDone replayOutcome = iota // confirmed and removed
	replayGaveUp                    // relabeled failed, queue advances
	replayStalled                   // transient failure under budget, entry stays put
)

// Drain replays pending entries in FIFO order until the outbox is empty
// or a transient failure leaves an entry at the front for the next
// session.
func (e *syncEngine) Drain(ctx context.Context) (DrainStats, error) {
	if !e.drainMu.TryLock() {
		return DrainStats{}, ErrDrainInProgress
	}
	defer e.drainMu.Unlock()

	var stats DrainStats

drain:
	for {
		batch, err := e.outbox.NextPending(ctx, e.drainBatch)
		if err != nil {
			return stats, fmt.Errorf("load pending batch: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, req := range batch {
			outcome, err := e.replay(ctx, req)
			if err != nil {
				return stats, err
			}

			switch outcome {
			case replayDone:
				stats.Replayed++
			case replayGaveUp:
				stats.Failed++
			case replayStalled:
				// the entry stays at the front; stop this session
				// rather than hammering a backend that just failed
				break drain
			}
		}
	}

	remaining, err := e.outbox.CountPending(ctx)
	if err == nil {
		stats.Remaining = remaining
	}

	if stats.Replayed > 0 {
		now := time.Now()
		e.lastSyncMu.Lock()
		e.lastSync = &now
		e.lastSyncMu.Unlock()
	}

	e.logger.Info().
		Int("replayed", stats.Replayed).
		Int("failed", stats.Failed).
		Int("remaining", stats.Remaining).
		Msg("drain session finished")

	return stats, nil
}

func (e *syncEngine) replay(ctx context.Context, req models.PendingRequest) (replayOutcome, error) {
	_, err := e.gateway.Execute(ctx, gateway.Call{
		Method:         req.Method,
		Endpoint:       req.Endpoint,
		Body:           req.Body,
		IdempotencyKey: req.ID,
	})

	if err == nil {
		if err := e.outbox.Remove(ctx, req.ID); err != nil {
			return replayStalled, fmt.Errorf("remove replayed entry %s: %w", req.ID, err)
		}
		e.cache.Invalidate(ctx, models.ResourceRoot(req.Endpoint))
		e.logger.Info().
			Str("id", req.ID).
			Str("method", req.Method).
			Str("endpoint", req.Endpoint).
			Msg("queued mutation replayed")
		return replayDone, nil
	}

	// the backend rejected the entry itself; retrying cannot help
	if !gateway.IsTransient(err) {
		return e.giveUp(ctx, req, err)
	}

	if err := e.outbox.IncrementRetry(ctx, req.ID); err != nil {
		return replayStalled, fmt.Errorf("bump retry count %s: %w", req.ID, err)
	}
	if req.RetryCount+1 >= e.maxRetries {
		return e.giveUp(ctx, req, err)
	}

	e.logger.Warn().
		Str("id", req.ID).
		Str("endpoint", req.Endpoint).
		Int("retry_count", req.RetryCount+1).
		Msg("replay failed, will retry next session")

	return replayStalled, nil
}

func (e *syncEngine) giveUp(ctx context.Context, req models.PendingRequest, cause error) (replayOutcome, error) {
	if err := e.outbox.MarkFailed(ctx, req.ID); err != nil {
		return replayStalled, fmt.Errorf("mark entry failed %s: %w", req.ID, err)
	}

	e.logger.Error().
		Err(cause).
		Str("id", req.ID).
		Str("method", req.Method).
		Str("endpoint", req.Endpoint).
		Msg("queued mutation gave up")

	return replayGaveUp, nil
}

func (e *syncEngine) ConnectivityStatus() models.ConnectivityStatus {
	return e.connectivity.Status()
}

func (e *syncEngine) ListFailedMutations(ctx context.Context) ([]models.PendingRequest, error) {
	return e.outbox.ListFailed(ctx)
}

func (e *syncEngine) LastSync() *time.Time {
	e.lastSyncMu.RLock()
	defer e.lastSyncMu.RUnlock()
	return e.lastSync
}

func newRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
