package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/models"
)

// ClientSyncService reconciles the local mirror with the remote dataset.
type ClientSyncService interface {
	// Sync pulls remote changes and pushes local pending rows for every
	// mirrored table. At most one run is active at a time; a call made while
	// another run is active is dropped and returns ErrSyncInProgress.
	// Per-row push failures are logged and leave the row pending; they do not
	// fail the run.
	Sync(ctx context.Context) (models.SyncReport, error)

	// OnConnectivityChange records the latest connectivity state. A
	// transition to online starts a sync run in the background.
	OnConnectivityChange(ctx context.Context, online bool)

	// InProgress reports whether a sync run is active.
	InProgress() bool

	// Requested returns how many sync runs were requested, including dropped ones.
	Requested() int64

	// Executed returns how many sync runs actually started.
	Executed() int64
}

// ClientSyncJob runs ClientSyncService.Sync on a fixed interval.
type ClientSyncJob interface {
	// Start launches the background ticker. A running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the ticker and waits for the goroutine to exit.
	Stop()
}

// ClientCacheService bulk-populates the local mirror and publishes
// CacheStatus changes.
type ClientCacheService interface {
	// Subscribe registers listener, calls it once with the current status and
	// returns a function that removes it. Listeners run synchronously in
	// registration order; a panicking listener does not affect the others.
	Subscribe(listener func(models.CacheStatus)) (unsubscribe func())

	// StartDownload downloads the whole remote catalog in fixed-size batches
	// and blocks until the session ends. Only a failure of the initial count
	// query is fatal.
	StartDownload(ctx context.Context) error

	// ClearCache aborts a running download, removes every cache-tagged entry
	// and resets the progress counters.
	ClearCache(ctx context.Context) error

	// RefreshCache runs ClearCache and then StartDownload.
	RefreshCache(ctx context.Context) error

	CurrentStatus() models.CacheStatus
	State() DownloadState
	IsReadyForOffline() bool
}

// ClientLoaderService pages through the remote catalog for display.
type ClientLoaderService interface {
	// LoadPage fetches page n (1-based). Page 1 replaces the working set,
	// later pages are merged into it by id. Returns ErrLoadInProgress when a
	// load is already running.
	LoadPage(ctx context.Context, n int) error

	// Refresh reloads page 1 for the current filter.
	Refresh(ctx context.Context) error

	// SetFilter changes the search text and category, resets the address
	// queue when either changed and reloads page 1.
	SetFilter(ctx context.Context, search, category string) error

	Items() []models.CatalogRecord
	HasMore() bool
	CurrentPage() int
	Loading() bool

	// Close stops the prefetch timer.
	Close()
}

// ClientFavoriteService manages favorites of the authenticated user.
type ClientFavoriteService interface {
	Add(ctx context.Context, recordID string) (models.FavoriteRecord, error)
	Remove(ctx context.Context, recordID string) error
	List(ctx context.Context) ([]models.FavoriteRecord, error)
}

// ClientCatalogService reads the local mirror.
type ClientCatalogService interface {
	Records(ctx context.Context, limit, offset int) ([]models.CatalogRecord, error)
	Search(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error)
	Record(ctx context.Context, id string) (models.CatalogRecord, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// AddressScheduler receives records that became visible so that their
// display address can be resolved in the background.
type AddressScheduler interface {
	Enqueue(records ...models.CatalogRecord)
	// Reset drops queued work. Resolutions already running are not aborted.
	Reset()
}
