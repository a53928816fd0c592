package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type clientSyncService struct {
	storages *store.ClientStorages
	remote   adapter.RemoteAdapter
	logger   *logger.Logger
	now      func() time.Time

	running   atomic.Bool
	online    atomic.Bool
	requested atomic.Int64
	executed  atomic.Int64

	// triggered tracks syncs started by connectivity transitions.
	triggered sync.WaitGroup
}

// NewClientSyncService creates a sync coordinator over the local storages
// and the remote adapter. The connectivity state starts as offline, so the
// first OnConnectivityChange(true) triggers a sync.
func NewClientSyncService(storages *store.ClientStorages, remote adapter.RemoteAdapter, log *logger.Logger) ClientSyncService {
	return &clientSyncService{
		storages: storages,
		remote:   remote,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *clientSyncService) Sync(ctx context.Context) (models.SyncReport, error) {
	s.requested.Add(1)
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug().Str("func", "clientSyncService.Sync").Msg("sync already running, request dropped")
		return models.SyncReport{}, ErrSyncInProgress
	}
	defer s.running.Store(false)
	s.executed.Add(1)

	report := models.SyncReport{StartedAt: s.now()}

	records, recordsErr := s.syncRecords(ctx)
	report.Tables = append(report.Tables, records)

	favorites, favoritesErr := s.syncFavorites(ctx)
	report.Tables = append(report.Tables, favorites)

	report.FinishedAt = s.now()

	if err := errors.Join(recordsErr, favoritesErr); err != nil {
		s.logger.Err(err).Str("func", "clientSyncService.Sync").Msg("sync finished with errors")
		return report, err
	}

	s.logger.Info().
		Str("func", "clientSyncService.Sync").
		Int("records_pulled", records.Pulled).
		Int("records_pushed", records.Pushed).
		Int("favorites_pulled", favorites.Pulled).
		Int("favorites_pushed", favorites.Pushed).
		Msg("sync finished")
	return report, nil
}

func (s *clientSyncService) OnConnectivityChange(ctx context.Context, online bool) {
	wasOnline := s.online.Swap(online)
	if !online || wasOnline {
		return
	}

	s.logger.Info().Str("func", "clientSyncService.OnConnectivityChange").Msg("connection restored, starting sync")

	s.triggered.Add(1)
	go func() {
		defer s.triggered.Done()
		if _, err := s.Sync(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
			s.logger.Warn().Err(err).Str("func", "clientSyncService.OnConnectivityChange").Msg("triggered sync failed")
		}
	}()
}

func (s *clientSyncService) InProgress() bool {
	return s.running.Load()
}

func (s *clientSyncService) Requested() int64 {
	return s.requested.Load()
}

func (s *clientSyncService) Executed() int64 {
	return s.executed.Load()
}

// wait blocks until every connectivity-triggered sync has returned.
func (s *clientSyncService) wait() {
	s.triggered.Wait()
}

// syncRecords pulls remote catalog changes and then pushes local pending
// records. A pull failure skips the push; push failures are per row.
func (s *clientSyncService) syncRecords(ctx context.Context) (models.TableSyncReport, error) {
	table := models.CatalogRecord{}.TableName()
	report := models.TableSyncReport{Table: table}

	meta, err := s.storages.SyncMetadata.GetSyncMetadata(ctx, table)
	if err != nil {
		return report, fmt.Errorf("read %s sync metadata: %w", table, err)
	}

	pulled, err := s.remote.FetchRecordsUpdatedAfter(ctx, meta.LastSyncTimestamp)
	if err != nil {
		return report, fmt.Errorf("pull %s: %w", table, err)
	}

	now := s.now()
	for i := range pulled {
		pulled[i].SyncStatus = models.RecordSynced
		pulled[i].LastModified = now
	}
	if err = s.storages.Catalog.UpsertRecords(ctx, pulled...); err != nil {
		return report, fmt.Errorf("store pulled %s: %w", table, err)
	}
	report.Pulled = len(pulled)

	// The timestamp is the local clock at the end of the pull, not the
	// newest updated_at among the pulled rows.
	meta.LastSyncTimestamp = &now
	if err = s.saveMetadata(ctx, meta, s.storages.Catalog.CountPendingRecords); err != nil {
		return report, err
	}

	pending, err := s.storages.Catalog.GetPendingRecords(ctx)
	if err != nil {
		return report, fmt.Errorf("read pending %s: %w", table, err)
	}

	for _, record := range pending {
		if err = s.remote.UpsertRecord(ctx, record); err != nil {
			report.Failed++
			s.logger.Warn().Err(err).
				Str("func", "clientSyncService.syncRecords").
				Str("id", record.ID).
				Bool("transient", adapter.IsTransient(err)).
				Msg("push failed, record stays pending")
			continue
		}
		if err = s.storages.Catalog.MarkRecordsSynced(ctx, record.ID); err != nil {
			return report, fmt.Errorf("mark %s synced: %w", record.ID, err)
		}
		report.Pushed++
	}

	return report, s.saveMetadata(ctx, meta, s.storages.Catalog.CountPendingRecords)
}

// syncFavorites mirrors favorites of the authenticated user. Without a user
// the leg is skipped.
func (s *clientSyncService) syncFavorites(ctx context.Context) (models.TableSyncReport, error) {
	table := models.FavoriteRecord{}.TableName()
	report := models.TableSyncReport{Table: table}

	userID, ok := s.remote.UserID()
	if !ok {
		s.logger.Debug().Str("func", "clientSyncService.syncFavorites").Err(ErrUnauthenticated).Msg("skipping favorites")
		report.Skipped = true
		return report, nil
	}

	meta, err := s.storages.SyncMetadata.GetSyncMetadata(ctx, table)
	if err != nil {
		return report, fmt.Errorf("read %s sync metadata: %w", table, err)
	}

	pulled, err := s.remote.FetchFavoritesUpdatedAfter(ctx, userID, meta.LastSyncTimestamp)
	if err != nil {
		return report, fmt.Errorf("pull %s: %w", table, err)
	}

	now := s.now()
	for i := range pulled {
		pulled[i].SyncStatus = models.FavoriteSynced
		pulled[i].LastModified = now
	}
	if report.Pulled, err = s.storages.Favorites.UpsertFavorites(ctx, pulled...); err != nil {
		return report, fmt.Errorf("store pulled %s: %w", table, err)
	}

	meta.LastSyncTimestamp = &now
	if err = s.saveMetadata(ctx, meta, s.storages.Favorites.CountPendingFavorites); err != nil {
		return report, err
	}

	pending, err := s.storages.Favorites.GetPendingFavorites(ctx, userID)
	if err != nil {
		return report, fmt.Errorf("read pending %s: %w", table, err)
	}

	for _, favorite := range pending {
		if favorite.SyncStatus == models.FavoriteDeleted {
			err = s.pushFavoriteDelete(ctx, favorite)
		} else {
			err = s.pushFavorite(ctx, favorite)
		}
		if err != nil {
			report.Failed++
			s.logger.Warn().Err(err).
				Str("func", "clientSyncService.syncFavorites").
				Str("id", favorite.ID).
				Str("status", string(favorite.SyncStatus)).
				Msg("push failed, favorite stays pending")
			continue
		}
		report.Pushed++
	}

	return report, s.saveMetadata(ctx, meta, s.storages.Favorites.CountPendingFavorites)
}

func (s *clientSyncService) pushFavorite(ctx context.Context, favorite models.FavoriteRecord) error {
	if err := s.remote.UpsertFavorite(ctx, favorite); err != nil {
		return err
	}
	return s.storages.Favorites.MarkFavoritesSynced(ctx, favorite.ID)
}

// pushFavoriteDelete removes the favorite remotely and only then purges the
// local tombstone.
func (s *clientSyncService) pushFavoriteDelete(ctx context.Context, favorite models.FavoriteRecord) error {
	if err := s.remote.DeleteFavorite(ctx, favorite); err != nil && !errors.Is(err, adapter.ErrNotFound) {
		return err
	}
	return s.storages.Favorites.PurgeFavorites(ctx, favorite.ID)
}

func (s *clientSyncService) saveMetadata(ctx context.Context, meta models.SyncMetadata, countPending func(context.Context) (int, error)) error {
	pending, err := countPending(ctx)
	if err != nil {
		return fmt.Errorf("count pending %s: %w", meta.TableName, err)
	}

	meta.PendingChanges = pending
	meta.Conflicts = 0
	if err = s.storages.SyncMetadata.SaveSyncMetadata(ctx, meta); err != nil {
		return fmt.Errorf("save %s sync metadata: %w", meta.TableName, err)
	}
	return nil
}
