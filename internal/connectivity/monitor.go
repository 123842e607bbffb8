// Package connectivity tracks backend reachability for the sync client.
//
// A Monitor probes a lightweight health endpoint on a fixed interval and
// maintains the last known [models.ConnectivityState]. Exactly one
// transition event is emitted per state change; polls that confirm an
// unchanged state emit nothing, so a flaky-free steady state never
// triggers redundant drains downstream.
package connectivity

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/KrisDawg/family-sync/internal/config"
	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/models"
)

// Prober performs one reachability check.
type Prober interface {
	// Probe returns nil when the backend is reachable. A 4xx response
	// still counts as reachable: the server answered.
	Probe(ctx context.Context) error

	// Target names the endpoint being probed, for status reporting.
	Target() string
}

type httpProber struct {
	client *resty.Client
	path   string
	target string
}

// NewHTTPProber builds a Prober hitting gatewayCfg.BaseURL + cfg.Path
// with cfg.Timeout as the per-probe bound.
func NewHTTPProber(cfg config.ClientProbe, gatewayCfg config.ClientGateway) Prober {
	base := strings.TrimRight(gatewayCfg.BaseURL, "/")
	path := cfg.Path
	if path == "" {
		path = "/api/health"
	}

	cli := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout)

	return &httpProber{client: cli, path: path, target: base + path}
}

func (p *httpProber) Probe(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get(p.path)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return &serverDownError{status: resp.StatusCode()}
	}
	return nil
}

func (p *httpProber) Target() string { return p.target }

type serverDownError struct{ status int }

func (e *serverDownError) Error() string {
	return "probe got " + http.StatusText(e.status)
}

// Monitor owns the probe loop and the observable connectivity state.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *logger.Logger

	mu     sync.RWMutex
	status models.ConnectivityStatus

	transitions chan models.ConnectivityTransition

	startMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewMonitor creates a Monitor that is idle until Start is called. The
// state is Unknown until the first probe completes.
func NewMonitor(prober Prober, interval time.Duration, log *logger.Logger) *Monitor {
	return &Monitor{
		prober:   prober,
		interval: interval,
		logger:   log,
		status: models.ConnectivityStatus{
			State:  models.ConnectivityUnknown,
			Target: prober.Target(),
		},
		transitions: make(chan models.ConnectivityTransition, 8),
	}
}

// Start launches the probe loop: one immediate probe, then one per
// interval. It stops any previously running loop first. If interval is
// zero or negative it defaults to 5 seconds.
func (m *Monitor) Start(ctx context.Context) {
	interval := m.interval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	m.Stop()

	m.startMu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.startMu.Unlock()

	go func() {
		defer m.wg.Done()

		m.probeOnce(loopCtx)

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				m.probeOnce(loopCtx)
			}
		}
	}()
}

// Stop cancels the probe loop and blocks until it has exited. Safe to
// call when the monitor is not running.
func (m *Monitor) Stop() {
	m.startMu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.startMu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Status returns a snapshot of the most recent probe outcome.
func (m *Monitor) Status() models.ConnectivityStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// State returns the last known connectivity state.
func (m *Monitor) State() models.ConnectivityState {
	return m.Status().State
}

// Transitions returns the channel carrying one event per state change.
// Events are dropped, not blocked on, if the consumer falls behind.
func (m *Monitor) Transitions() <-chan models.ConnectivityTransition {
	return m.transitions
}

// ForceProbe runs a probe immediately, outside the regular cadence, and
// returns the resulting status. Used by the manual "test connection"
// action.
func (m *Monitor) ForceProbe(ctx context.Context) models.ConnectivityStatus {
	m.probeOnce(ctx)
	return m.Status()
}

func (m *Monitor) probeOnce(ctx context.Context) {
	start := time.Now()
	err := m.prober.Probe(ctx)
	latency := time.Since(start)

	newState := models.ConnectivityOnline
	errText := ""
	if err != nil {
		newState = models.ConnectivityOffline
		errText = err.Error()
	}

	m.mu.Lock()
	oldState := m.status.State
	m.status = models.ConnectivityStatus{
		State:     newState,
		Target:    m.prober.Target(),
		LatencyMs: latency.Milliseconds(),
		Error:     errText,
		CheckedAt: time.Now(),
	}
	m.mu.Unlock()

	if oldState == newState {
		return
	}

	transition := models.ConnectivityTransition{From: oldState, To: newState, At: time.Now()}
	m.logger.Info().
		Str("from", string(oldState)).
		Str("to", string(newState)).
		Int64("latency_ms", latency.Milliseconds()).
		Msg("connectivity state changed")

	select {
	case m.transitions <- transition:
	default:
		m.logger.Warn().Msg("transition channel full, event dropped")
	}
}
