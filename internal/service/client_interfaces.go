package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KrisDawg/family-sync/models"
)

// ConnectivitySource is the engine's view of the connectivity monitor.
type ConnectivitySource interface {
	// State returns the last known connectivity state.
	State() models.ConnectivityState

	// Status returns a snapshot of the most recent probe outcome.
	Status() models.ConnectivityStatus

	// Transitions carries one event per state change.
	Transitions() <-chan models.ConnectivityTransition
}

// DrainStats summarises one drain session.
type DrainStats struct {
	// Replayed is the number of entries confirmed by the backend and
	// removed from the outbox.
	Replayed int

	// Failed is the number of entries relabeled failed this session.
	Failed int

	// Remaining is the number of pending entries left when the session
	// ended.
	Remaining int
}

// SyncEngine is the caller-facing surface of the sync client. The mobile
// shell issues every read and write through it; the engine decides
// between the live backend, the response cache, and the outbox.
type SyncEngine interface {
	// Fetch performs a read. While online it calls the backend and
	// repopulates the cache; on transport failure, or while offline, it
	// serves the cached value instead, stale if need be. Returns
	// ErrNoCachedData when neither source can answer.
	Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error)

	// Mutate performs a write. While online it calls the backend
	// directly and invalidates cached reads of the touched resource.
	// When the backend is unreachable the write is queued durably and a
	// pending result is returned — never an error — so the caller can
	// apply an optimistic update. Client errors (4xx) and malformed
	// bodies are surfaced immediately and are not queued.
	Mutate(ctx context.Context, method, endpoint string, body json.RawMessage) (models.MutationResult, error)

	// Drain replays pending outbox entries in FIFO order. At most one
	// drain session runs at a time; a concurrent call returns
	// ErrDrainInProgress.
	Drain(ctx context.Context) (DrainStats, error)

	// ConnectivityStatus reports the monitor's current snapshot.
	ConnectivityStatus() models.ConnectivityStatus

	// ListFailedMutations returns every outbox entry that gave up,
	// oldest first, for a "sync issues" view.
	ListFailedMutations(ctx context.Context) ([]models.PendingRequest, error)

	// LastSync returns the time of the last drain that replayed at
	// least one entry, or nil if none has yet.
	LastSync() *time.Time
}

// ClientDrainJob owns the single background task that runs drains in
// response to reconnect transitions, manual triggers, and a slow
// periodic tick.
type ClientDrainJob interface {
	// Start launches the background task. It stops any previously
	// running one first.
	Start(ctx context.Context)

	// Stop cancels the task and blocks until it has exited.
	Stop()

	// Trigger requests a drain outside the regular cadence. Never
	// blocks; a trigger that arrives while one is already queued is
	// coalesced.
	Trigger()
}
