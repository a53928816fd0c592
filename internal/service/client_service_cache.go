package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const (
	// CacheStatusKey is the cache entry holding the JSON-encoded CacheStatus.
	CacheStatusKey = "cache_status"

	CatalogCachePrefix = "catalog_cache_"
	ImageCachePrefix   = "image_cache_"

	defaultDownloadBatchSize = 20
)

// DownloadState is the state of the cache download state machine.
type DownloadState int

const (
	DownloadIdle DownloadState = iota
	DownloadDownloading
	DownloadComplete
	DownloadError
)

func (s DownloadState) String() string {
	switch s {
	case DownloadDownloading:
		return "downloading"
	case DownloadComplete:
		return "complete"
	case DownloadError:
		return "error"
	default:
		return "idle"
	}
}

// stateOf derives the download state from a status snapshot.
func stateOf(status models.CacheStatus) DownloadState {
	switch {
	case status.IsDownloading:
		return DownloadDownloading
	case status.Error != nil:
		return DownloadError
	case status.IsComplete:
		return DownloadComplete
	default:
		return DownloadIdle
	}
}

type clientCacheService struct {
	storages  *store.ClientStorages
	remote    adapter.RemoteAdapter
	logger    *logger.Logger
	batchSize int
	now       func() time.Time

	// opMu serialises starting a session against ClearCache.
	opMu        sync.Mutex
	downloading atomic.Bool

	runMu     sync.Mutex
	cancelRun context.CancelFunc
	runDone   chan struct{}

	// publishMu keeps persisted and published statuses in mutation order.
	publishMu sync.Mutex
	statusMu  sync.RWMutex
	status    models.CacheStatus

	broadcaster *broadcaster[models.CacheStatus]
}

// NewClientCacheService creates the cache download manager. The status
// persisted under CacheStatusKey is loaded before the service is returned,
// so the first subscriber already sees it.
func NewClientCacheService(ctx context.Context, storages *store.ClientStorages, remote adapter.RemoteAdapter, batchSize int, log *logger.Logger) (ClientCacheService, error) {
	if batchSize <= 0 {
		batchSize = defaultDownloadBatchSize
	}

	c := &clientCacheService{
		storages:  storages,
		remote:    remote,
		logger:    log,
		batchSize: batchSize,
		now:       func() time.Time { return time.Now().UTC() },
	}

	status, err := c.loadStatus(ctx)
	if err != nil {
		return nil, err
	}
	c.status = status
	c.broadcaster = newBroadcaster(status, log)

	return c, nil
}

func (c *clientCacheService) loadStatus(ctx context.Context) (models.CacheStatus, error) {
	entry, err := c.storages.Cache.GetEntry(ctx, CacheStatusKey)
	if errors.Is(err, store.ErrEntryNotFound) {
		return models.CacheStatus{}, nil
	}
	if err != nil {
		return models.CacheStatus{}, fmt.Errorf("load cache status: %w", err)
	}

	var status models.CacheStatus
	if err = json.Unmarshal(entry.Value, &status); err != nil {
		c.logger.Warn().Err(err).Str("func", "clientCacheService.loadStatus").Msg("stored cache status is unreadable, using defaults")
		return models.CacheStatus{}, nil
	}
	return status, nil
}

func (c *clientCacheService) Subscribe(listener func(models.CacheStatus)) func() {
	return c.broadcaster.Subscribe(listener)
}

func (c *clientCacheService) CurrentStatus() models.CacheStatus {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.status
}

func (c *clientCacheService) State() DownloadState {
	return stateOf(c.CurrentStatus())
}

func (c *clientCacheService) IsReadyForOffline() bool {
	return c.CurrentStatus().ReadyForOffline()
}

func (c *clientCacheService) StartDownload(ctx context.Context) error {
	c.opMu.Lock()
	if !c.downloading.CompareAndSwap(false, true) {
		c.opMu.Unlock()
		return ErrDownloadInProgress
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.runMu.Lock()
	c.cancelRun, c.runDone = cancel, done
	c.runMu.Unlock()
	c.opMu.Unlock()

	defer func() {
		cancel()
		c.runMu.Lock()
		c.cancelRun, c.runDone = nil, nil
		c.runMu.Unlock()
		c.downloading.Store(false)
		close(done)
	}()

	return c.download(runCtx)
}

func (c *clientCacheService) ClearCache(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.runMu.Lock()
	cancel, done := c.cancelRun, c.runDone
	c.runMu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}

	removed, err := c.storages.Cache.DeleteByPrefix(ctx, CatalogCachePrefix, ImageCachePrefix)
	if err != nil {
		return fmt.Errorf("clear cache entries: %w", err)
	}

	c.mutate(ctx, func(s *models.CacheStatus) {
		s.IsDownloading = false
		s.DownloadedItems = 0
		s.DownloadProgress = 0
		s.CacheSize = 0
		s.IsComplete = false
	})

	c.logger.Info().Str("func", "clientCacheService.ClearCache").Int64("removed", removed).Msg("cache cleared")
	return nil
}

func (c *clientCacheService) RefreshCache(ctx context.Context) error {
	if err := c.ClearCache(ctx); err != nil {
		return err
	}
	return c.StartDownload(ctx)
}

func (c *clientCacheService) download(ctx context.Context) error {
	c.mutate(ctx, func(s *models.CacheStatus) {
		s.IsDownloading = true
		s.DownloadProgress = 0
		s.DownloadedItems = 0
		s.IsComplete = false
		s.Error = nil
	})

	total, err := c.remote.CountRecords(ctx)
	if err != nil {
		msg := err.Error()
		c.mutate(ctx, func(s *models.CacheStatus) {
			s.IsDownloading = false
			s.Error = &msg
		})
		c.logger.Err(err).Str("func", "clientCacheService.download").Msg("count query failed, download aborted")
		return fmt.Errorf("count remote records: %w", err)
	}
	c.mutate(ctx, func(s *models.CacheStatus) { s.TotalItems = total })

	downloaded := 0
	for record, err := range c.downloadSequence(ctx, total) {
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			c.logger.Warn().Err(err).Str("func", "clientCacheService.download").Msg("batch skipped")
			continue
		}

		if err = c.storeItem(ctx, record); err != nil {
			c.logger.Warn().Err(err).Str("func", "clientCacheService.download").Str("id", record.ID).Msg("item skipped")
			continue
		}

		downloaded++
		c.mutate(ctx, func(s *models.CacheStatus) {
			s.DownloadedItems = downloaded
			s.DownloadProgress = progressPercent(downloaded, total)
		})
	}

	if err = ctx.Err(); err != nil {
		c.mutate(ctx, func(s *models.CacheStatus) { s.IsDownloading = false })
		c.logger.Info().Str("func", "clientCacheService.download").Int("downloaded", downloaded).Msg("download aborted")
		return err
	}

	size, err := c.storages.Cache.SizeByPrefix(ctx, CatalogCachePrefix, ImageCachePrefix)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "clientCacheService.download").Msg("failed to compute cache size")
	}

	now := c.now()
	c.mutate(ctx, func(s *models.CacheStatus) {
		s.IsDownloading = false
		s.IsComplete = true
		s.DownloadProgress = 100
		s.CacheSize = size
		s.LastUpdated = &now
	})

	c.logger.Info().
		Str("func", "clientCacheService.download").
		Int("total", total).
		Int("downloaded", downloaded).
		Int64("size", size).
		Msg("download complete")
	return nil
}

// downloadSequence lazily yields every remote record in batches of
// batchSize. A failed batch yields one error and the sequence moves on to
// the next batch. Each call of the returned function starts from the first
// batch again.
func (c *clientCacheService) downloadSequence(ctx context.Context, total int) iter.Seq2[models.CatalogRecord, error] {
	return func(yield func(models.CatalogRecord, error) bool) {
		for from := 0; from < total; from += c.batchSize {
			if err := ctx.Err(); err != nil {
				yield(models.CatalogRecord{}, err)
				return
			}

			to := min(from+c.batchSize, total) - 1
			batch, err := c.remote.FetchRecordsRange(ctx, from, to)
			if err != nil {
				if !yield(models.CatalogRecord{}, fmt.Errorf("fetch batch %d-%d: %w", from, to, err)) {
					return
				}
				continue
			}

			for _, record := range batch {
				if !yield(record, nil) {
					return
				}
			}
		}
	}
}

// storeItem writes the record into the cache and the mirror. The image is
// recorded by reference only.
func (c *clientCacheService) storeItem(ctx context.Context, record models.CatalogRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrSerialization, err)
	}
	if err = c.storages.Cache.PutEntry(ctx, CatalogCachePrefix+record.ID, data); err != nil {
		return err
	}

	if record.ImageURL != nil && *record.ImageURL != "" {
		if err = c.storages.Cache.PutEntry(ctx, ImageCachePrefix+record.ID, []byte(*record.ImageURL)); err != nil {
			c.logger.Warn().Err(err).Str("func", "clientCacheService.storeItem").Str("id", record.ID).Msg("failed to record image reference")
		}
	}

	record.SyncStatus = models.RecordSynced
	record.LastModified = c.now()
	return c.storages.Catalog.UpsertRecords(ctx, record)
}

// mutate applies fn to the status, persists the result and publishes it.
func (c *clientCacheService) mutate(ctx context.Context, fn func(*models.CacheStatus)) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.statusMu.Lock()
	fn(&c.status)
	snapshot := c.status
	c.statusMu.Unlock()

	c.persist(context.WithoutCancel(ctx), snapshot)
	c.broadcaster.Publish(snapshot)
}

func (c *clientCacheService) persist(ctx context.Context, status models.CacheStatus) {
	data, err := json.Marshal(status)
	if err == nil {
		err = c.storages.Cache.PutEntry(ctx, CacheStatusKey, data)
	}
	if err != nil {
		c.logger.Err(err).Str("func", "clientCacheService.persist").Msg("failed to persist cache status")
	}
}

func progressPercent(downloaded, total int) int {
	if total <= 0 {
		return 0
	}
	return min(int(math.Round(float64(downloaded)/float64(total)*100)), 100)
}
