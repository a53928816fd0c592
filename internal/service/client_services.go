package service

import (
	"context"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
)

// ClientServices groups the engine services built over one local mirror
// and one remote adapter.
type ClientServices struct {
	SyncService     ClientSyncService
	SyncJob         ClientSyncJob
	CacheService    ClientCacheService
	LoaderService   ClientLoaderService
	FavoriteService ClientFavoriteService
	CatalogService  ClientCatalogService
}

// NewClientServices wires every engine service. addresses receives the
// records shown by the loader and may be nil.
func NewClientServices(
	ctx context.Context,
	storages *store.ClientStorages,
	remote adapter.RemoteAdapter,
	addresses AddressScheduler,
	workersCfg config.ClientWorkers,
	log *logger.Logger,
) (*ClientServices, error) {
	cacheSvc, err := NewClientCacheService(ctx, storages, remote, workersCfg.DownloadBatchSize, log)
	if err != nil {
		return nil, err
	}

	syncSvc := NewClientSyncService(storages, remote, log)

	return &ClientServices{
		SyncService:     syncSvc,
		SyncJob:         NewClientSyncJob(syncSvc, log),
		CacheService:    cacheSvc,
		LoaderService:   NewClientLoaderService(remote, addresses, workersCfg.PageSize, workersCfg.PrefetchDelay, log),
		FavoriteService: NewClientFavoriteService(storages.Favorites, remote, log),
		CatalogService:  NewClientCatalogService(storages),
	}, nil
}
