package client

import (
	"context"
	"fmt"

	"github.com/KrisDawg/family-sync/internal/config"
	"github.com/KrisDawg/family-sync/internal/connectivity"
	"github.com/KrisDawg/family-sync/internal/gateway"
	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/internal/service"
	"github.com/KrisDawg/family-sync/internal/store"
	"github.com/KrisDawg/family-sync/internal/workers"
)

// App owns the assembled sync client: the service layer plus the
// background workers keeping the outbox drained.
type App struct {
	services *service.ClientServices
	monitor  *connectivity.Monitor
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp builds the full client from configuration: local sqlite
// storage, the HTTP gateway, the connectivity monitor, and the service
// layer on top of them.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	gw := gateway.NewHTTPGateway(cfg.Gateway, log)

	prober := connectivity.NewHTTPProber(cfg.Probe, cfg.Gateway)
	monitor := connectivity.NewMonitor(prober, cfg.Probe.Interval, log)

	services, err := service.NewClientServices(storages, gw, monitor, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create client services: %w", err)
	}

	return &App{
		services: services,
		monitor:  monitor,
		workers:  workers.New(monitor, services.DrainJob),
		logger:   log,
	}, nil
}

// Services exposes the service layer for callers embedding the client.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run starts the background workers and blocks until ctx is cancelled,
// then shuts them down in order.
func (a *App) Run(ctx context.Context) error {
	a.workers.Start(ctx)
	defer a.workers.Stop()

	status := a.monitor.ForceProbe(ctx)
	a.logger.Info().
		Str("state", string(status.State)).
		Str("target", status.Target).
		Msg("sync client started")

	<-ctx.Done()
	a.logger.Info().Msg("shutting down sync client")

	return nil
}
