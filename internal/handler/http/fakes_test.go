package http

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-catalog-mirror/internal/service"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

// ---- Fakes: service layer ----

type fakeCacheService struct {
	status models.CacheStatus
	state  service.DownloadState
	ready  bool

	clearErr error

	mu        sync.Mutex
	started   chan struct{}
	refreshed chan struct{}
	cleared   int
}

func newFakeCacheService() *fakeCacheService {
	return &fakeCacheService{
		started:   make(chan struct{}, 1),
		refreshed: make(chan struct{}, 1),
	}
}

func (f *fakeCacheService) Subscribe(listener func(models.CacheStatus)) func() {
	listener(f.status)
	return func() {}
}

func (f *fakeCacheService) StartDownload(context.Context) error {
	f.started <- struct{}{}
	return nil
}

func (f *fakeCacheService) ClearCache(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
	return f.clearErr
}

func (f *fakeCacheService) RefreshCache(context.Context) error {
	f.refreshed <- struct{}{}
	return nil
}

func (f *fakeCacheService) CurrentStatus() models.CacheStatus { return f.status }
func (f *fakeCacheService) State() service.DownloadState     { return f.state }
func (f *fakeCacheService) IsReadyForOffline() bool          { return f.ready }

type fakeSyncService struct {
	syncFn     func(ctx context.Context) (models.SyncReport, error)
	inProgress bool
	requested  int64
	executed   int64
}

func (f *fakeSyncService) Sync(ctx context.Context) (models.SyncReport, error) {
	return f.syncFn(ctx)
}
func (f *fakeSyncService) OnConnectivityChange(context.Context, bool) {}
func (f *fakeSyncService) InProgress() bool                          { return f.inProgress }
func (f *fakeSyncService) Requested() int64                          { return f.requested }
func (f *fakeSyncService) Executed() int64                           { return f.executed }

type fakeLoaderService struct {
	err     error
	items   []models.CatalogRecord
	page    int
	hasMore bool

	filterCalls [][2]string
	loadCalls   []int
}

func (f *fakeLoaderService) LoadPage(_ context.Context, n int) error {
	f.loadCalls = append(f.loadCalls, n)
	if f.err == nil {
		f.page = n
	}
	return f.err
}

func (f *fakeLoaderService) Refresh(ctx context.Context) error {
	return f.LoadPage(ctx, 1)
}

func (f *fakeLoaderService) SetFilter(_ context.Context, search, category string) error {
	f.filterCalls = append(f.filterCalls, [2]string{search, category})
	if f.err == nil {
		f.page = 1
	}
	return f.err
}

func (f *fakeLoaderService) Items() []models.CatalogRecord { return f.items }
func (f *fakeLoaderService) HasMore() bool                 { return f.hasMore }
func (f *fakeLoaderService) CurrentPage() int              { return f.page }
func (f *fakeLoaderService) Loading() bool                 { return false }
func (f *fakeLoaderService) Close()                        {}

type fakeFavoriteService struct {
	addFn    func(ctx context.Context, recordID string) (models.FavoriteRecord, error)
	removeFn func(ctx context.Context, recordID string) error
	listFn   func(ctx context.Context) ([]models.FavoriteRecord, error)
}

func (f *fakeFavoriteService) Add(ctx context.Context, recordID string) (models.FavoriteRecord, error) {
	return f.addFn(ctx, recordID)
}
func (f *fakeFavoriteService) Remove(ctx context.Context, recordID string) error {
	return f.removeFn(ctx, recordID)
}
func (f *fakeFavoriteService) List(ctx context.Context) ([]models.FavoriteRecord, error) {
	return f.listFn(ctx)
}

type fakeCatalogService struct {
	records  map[string]models.CatalogRecord
	searchFn func(query string, limit int) ([]models.CatalogRecord, error)
	stats    models.Stats
	statsErr error
}

func (f *fakeCatalogService) Records(context.Context, int, int) ([]models.CatalogRecord, error) {
	return nil, nil
}

func (f *fakeCatalogService) Search(_ context.Context, query string, limit int) ([]models.CatalogRecord, error) {
	return f.searchFn(query, limit)
}

func (f *fakeCatalogService) Record(_ context.Context, id string) (models.CatalogRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return models.CatalogRecord{}, errRecordNotFound(id)
	}
	return record, nil
}

func (f *fakeCatalogService) Stats(context.Context) (models.Stats, error) {
	return f.stats, f.statsErr
}

type fakeAddresses map[string]string

func (f fakeAddresses) Address(id string) (string, bool) {
	address, ok := f[id]
	return address, ok
}

func (f fakeAddresses) Stats() models.AddressQueueStats {
	return models.AddressQueueStats{Limit: 3, Resolved: len(f)}
}
