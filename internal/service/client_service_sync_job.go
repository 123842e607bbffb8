package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/internal/store"
	"github.com/KrisDawg/family-sync/models"
)

// drainJob is the single background task that drains the outbox. It
// reacts to reconnect transitions from the connectivity monitor, to
// manual triggers, and to a slow periodic tick that catches entries
// queued while already online.
type drainJob struct {
	engine       SyncEngine
	connectivity ConnectivitySource
	outbox       store.OutboxRepository
	interval     time.Duration
	logger       *logger.Logger

	trigger chan struct{}

	startMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDrainJob builds the background drain task. interval is the
// periodic fallback cadence; zero or negative defaults to one minute.
func NewDrainJob(
	engine SyncEngine,
	connectivity ConnectivitySource,
	outbox store.OutboxRepository,
	interval time.Duration,
	log *logger.Logger,
) ClientDrainJob {
	if interval <= 0 {
		interval = time.Minute
	}

	return &drainJob{
		engine:       engine,
		connectivity: connectivity,
		outbox:       outbox,
		interval:     interval,
		logger:       log,
		trigger:      make(chan struct{}, 1),
	}
}

func (j *drainJob) Start(ctx context.Context) {
	j.Stop()

	j.startMu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.startMu.Unlock()

	go j.run(loopCtx)
}

func (j *drainJob) Stop() {
	j.startMu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.startMu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *drainJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

func (j *drainJob) run(ctx context.Context) {
	defer j.wg.Done()

	t := time.NewTicker(j.interval)
	defer t.Stop()

	transitions := j.connectivity.Transitions()

	for {
		select {
		case <-ctx.Done():
			return
		case tr := <-transitions:
			if tr.To == models.ConnectivityOnline {
				j.drain(ctx, "reconnect")
			}
		case <-j.trigger:
			j.drain(ctx, "manual")
		case <-t.C:
			j.drainIfBacklogged(ctx)
		}
	}
}

// drainIfBacklogged skips the periodic drain when there is nothing to
// do or the backend is known to be down.
func (j *drainJob) drainIfBacklogged(ctx context.Context) {
	if j.connectivity.State() != models.ConnectivityOnline {
		return
	}

	pending, err := j.outbox.CountPending(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("count pending entries")
		return
	}
	if pending == 0 {
		return
	}

	j.drain(ctx, "periodic")
}

func (j *drainJob) drain(ctx context.Context, reason string) {
	stats, err := j.engine.Drain(ctx)
	if err != nil {
		if errors.Is(err, ErrDrainInProgress) {
			return
		}
		j.logger.Error().Err(err).Str("reason", reason).Msg("drain failed")
		return
	}

	if stats.Replayed > 0 || stats.Failed > 0 {
		j.logger.Info().
			Str("reason", reason).
			Int("replayed", stats.Replayed).
			Int("failed", stats.Failed).
			Int("remaining", stats.Remaining).
			Msg("background drain ran")
	}
}
