package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/handler"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/server"
	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/internal/tui"
	"github.com/MKhiriev/go-catalog-mirror/internal/workers"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

// Dashboard is the interactive front end run in the foreground.
type Dashboard interface {
	Run(ctx context.Context) error
}

type App struct {
	storages  *store.ClientStorages
	remote    adapter.RemoteAdapter
	addresses *workers.AddressQueue
	services  *service.ClientServices
	monitor   *workers.ConnectivityMonitor
	workers   *workers.Workers
	server    server.Server
	dashboard Dashboard

	logger *logger.Logger
}

// NewApp builds the engine from cfg. The control API is started only when
// cfg.Server.HTTPAddress is set, the dashboard only when cfg.App.Headless is
// false.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	remote, err := adapter.NewRemoteAdapter(ctx, cfg.Adapter, cfg.App, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	geocoder, err := adapter.NewNominatimGeocoder(cfg.Adapter, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create geocoder: %w", err)
	}

	app, err := newApp(ctx, storages, remote, geocoder, cfg, buildInfo, log)
	if err != nil {
		storages.Close()
		return nil, err
	}
	return app, nil
}

func newApp(
	ctx context.Context,
	storages *store.ClientStorages,
	remote adapter.RemoteAdapter,
	geocoder adapter.Geocoder,
	cfg *config.ClientConfig,
	buildInfo models.AppBuildInfo,
	log *logger.Logger,
) (*App, error) {
	addresses := workers.NewAddressQueue(geocoder, cfg.Workers.AddressConcurrency, log)

	services, err := service.NewClientServices(ctx, storages, remote, addresses, cfg.Workers, log)
	if err != nil {
		addresses.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	monitor := workers.NewConnectivityMonitor(remote, services.SyncService.OnConnectivityChange, cfg.Workers.ConnectivityInterval, log)

	app := &App{
		storages:  storages,
		remote:    remote,
		addresses: addresses,
		services:  services,
		monitor:   monitor,
		workers: workers.NewWorkers(
			monitor,
			workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval),
		),
		logger: log,
	}

	handlers, err := handler.NewHandlers(ctx, services, addresses, buildInfo, cfg.Server, log)
	switch {
	case err == nil:
		if app.server, err = server.NewServer(handlers, cfg.Server, log); err != nil {
			return nil, fmt.Errorf("create control API server: %w", err)
		}
	case handler.IsNoHandlers(err):
		log.Info().Msg("control API disabled")
	default:
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	if !cfg.App.Headless {
		if app.dashboard, err = tui.New(services, buildInfo, log); err != nil {
			return nil, fmt.Errorf("create dashboard: %w", err)
		}
	}

	return app, nil
}

// Run starts the background workers and the control API, then blocks in the
// dashboard, or until ctx is cancelled when running headless. Leaving the
// dashboard stops the engine.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Run(ctx)
	defer a.workers.Stop()

	g, gctx := errgroup.WithContext(ctx)
	if a.server != nil {
		g.Go(func() error {
			return a.server.RunServer(gctx)
		})
	}

	g.Go(func() error {
		if a.dashboard == nil {
			<-gctx.Done()
			return nil
		}
		defer cancel()
		return a.dashboard.Run(gctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	a.logger.Info().Msg("catalog mirror stopped")
	return err
}

// Close stops address resolution and prefetching and closes the local store.
func (a *App) Close() error {
	a.services.LoaderService.Close()
	a.addresses.Close()
	return a.storages.Close()
}
