// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/mock"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

var syncNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

// newTestSyncSvc — хелпер для создания clientSyncService с моками
func newTestSyncSvc(t *testing.T) (*clientSyncService, *store.ClientStorages, *mock.MockRemoteAdapter) {
	t.Helper()
	storages := newTestStorages(t)
	remote := newTestRemote(t)

	svc := NewClientSyncService(storages, remote, logger.Nop()).(*clientSyncService)
	svc.now = fixedClock(syncNow)
	return svc, storages, remote
}

func withoutUser(remote *mock.MockRemoteAdapter) {
	remote.EXPECT().UserID().Return("", false).AnyTimes()
}

// ── pull ─────────────────────────────────────────────────────────────────────

func TestClientSyncService_Sync_PullStoresRecordsAndTimestamp(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	pulled := []models.CatalogRecord{record("r2"), record("r1")}
	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), (*time.Time)(nil)).Return(pulled, nil)

	report, err := svc.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, report.Tables, 2)
	assert.Equal(t, "restaurants", report.Tables[0].Table)
	assert.Equal(t, 2, report.Tables[0].Pulled)
	assert.True(t, report.Tables[1].Skipped)

	got, err := storages.Catalog.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.RecordSynced, got.SyncStatus)

	meta, err := storages.SyncMetadata.GetSyncMetadata(ctx, "restaurants")
	require.NoError(t, err)
	require.NotNil(t, meta.LastSyncTimestamp)
	assert.True(t, syncNow.Equal(*meta.LastSyncTimestamp))
	assert.Equal(t, 0, meta.PendingChanges)
	assert.Equal(t, 0, meta.Conflicts)
}

func TestClientSyncService_Sync_SecondRunPullsSinceLastSync(t *testing.T) {
	svc, _, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	gomock.InOrder(
		remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), (*time.Time)(nil)).Return(nil, nil),
		remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ context.Context, after *time.Time) ([]models.CatalogRecord, error) {
				// метка времени = "now" предыдущего прогона, а не max(updated_at)
				assert.True(t, syncNow.Equal(*after))
				return nil, nil
			}),
	)

	_, err := svc.Sync(ctx)
	require.NoError(t, err)
	_, err = svc.Sync(ctx)
	require.NoError(t, err)
}

func TestClientSyncService_Sync_PullOverwritesPendingRow(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	local := record("r1")
	local.Name = "local edit"
	local.SyncStatus = models.RecordPending
	require.NoError(t, storages.Catalog.UpsertRecords(ctx, local))

	server := record("r1")
	server.Name = "server edit"
	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return([]models.CatalogRecord{server}, nil)

	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	got, err := storages.Catalog.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "server edit", got.Name)
	assert.Equal(t, models.RecordSynced, got.SyncStatus)
}

func TestClientSyncService_Sync_PullErrorSkipsPush(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	pending := record("r1")
	pending.SyncStatus = models.RecordPending
	require.NoError(t, storages.Catalog.UpsertRecords(ctx, pending))

	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("pull: %w", adapter.ErrTransient))

	_, err := svc.Sync(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrTransient)

	meta, err := storages.SyncMetadata.GetSyncMetadata(ctx, "restaurants")
	require.NoError(t, err)
	assert.Nil(t, meta.LastSyncTimestamp)
}

// ── push ─────────────────────────────────────────────────────────────────────

func TestClientSyncService_Sync_PushMarksSuccessesSynced(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	ok, failing := record("ok"), record("failing")
	ok.SyncStatus, failing.SyncStatus = models.RecordPending, models.RecordPending
	require.NoError(t, storages.Catalog.UpsertRecords(ctx, ok, failing))

	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.CatalogRecord) error {
			if r.ID == "failing" {
				return fmt.Errorf("write: %w", adapter.ErrTransient)
			}
			return nil
		}).Times(2)

	report, err := svc.Sync(ctx)
	require.NoError(t, err, "per-row push failures must not fail the run")
	assert.Equal(t, 1, report.Tables[0].Pushed)
	assert.Equal(t, 1, report.Tables[0].Failed)

	got, err := storages.Catalog.GetRecord(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, models.RecordSynced, got.SyncStatus)

	got, err = storages.Catalog.GetRecord(ctx, "failing")
	require.NoError(t, err)
	assert.Equal(t, models.RecordPending, got.SyncStatus)

	meta, err := storages.SyncMetadata.GetSyncMetadata(ctx, "restaurants")
	require.NoError(t, err)
	assert.Equal(t, 1, meta.PendingChanges)
}

func TestClientSyncService_Sync_FailedRowRetriedNextRun(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	pending := record("r1")
	pending.SyncStatus = models.RecordPending
	require.NoError(t, storages.Catalog.UpsertRecords(ctx, pending))

	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	gomock.InOrder(
		remote.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(adapter.ErrTransient),
		remote.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := svc.Sync(ctx)
	require.NoError(t, err)
	_, err = svc.Sync(ctx)
	require.NoError(t, err)

	n, err := storages.Catalog.CountPendingRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// ── favorites ────────────────────────────────────────────────────────────────

func TestClientSyncService_Sync_FavoritesPushAndTombstones(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()

	require.NoError(t, storages.Catalog.UpsertRecords(ctx, record("r1"), record("r2"), record("r3")))
	_, err := storages.Favorites.AddFavorite(ctx, "user-1", "r1")
	require.NoError(t, err)
	_, err = storages.Favorites.AddFavorite(ctx, "user-1", "r2")
	require.NoError(t, err)
	require.NoError(t, storages.Favorites.RemoveFavorite(ctx, "user-1", "r2"))
	_, err = storages.Favorites.AddFavorite(ctx, "user-1", "r3")
	require.NoError(t, err)
	require.NoError(t, storages.Favorites.RemoveFavorite(ctx, "user-1", "r3"))

	remote.EXPECT().UserID().Return("user-1", true).AnyTimes()
	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return(nil, nil)
	remote.EXPECT().FetchFavoritesUpdatedAfter(gomock.Any(), "user-1", (*time.Time)(nil)).Return(nil, nil)
	remote.EXPECT().UpsertFavorite(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.FavoriteRecord) error {
			assert.Equal(t, "r1", f.RestaurantID)
			return nil
		})
	remote.EXPECT().DeleteFavorite(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.FavoriteRecord) error {
			if f.RestaurantID == "r3" {
				return fmt.Errorf("delete: %w", adapter.ErrTransient)
			}
			return nil
		}).Times(2)

	report, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, "favorites", report.Tables[1].Table)
	assert.Equal(t, 2, report.Tables[1].Pushed)
	assert.Equal(t, 1, report.Tables[1].Failed)

	favorites, err := storages.Favorites.GetFavorites(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, models.FavoriteSynced, favorites[0].SyncStatus)

	// r2 удалён физически, r3 остаётся tombstone до следующей попытки
	pending, err := storages.Favorites.GetPendingFavorites(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, utils.FavoriteID("user-1", "r3"), pending[0].ID)
	assert.Equal(t, models.FavoriteDeleted, pending[0].SyncStatus)
}

func TestClientSyncService_Sync_FavoritesPulled(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()

	remote.EXPECT().UserID().Return("user-1", true).AnyTimes()
	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return([]models.CatalogRecord{record("r1")}, nil)
	remote.EXPECT().FetchFavoritesUpdatedAfter(gomock.Any(), "user-1", gomock.Any()).Return([]models.FavoriteRecord{
		{ID: utils.FavoriteID("user-1", "r1"), RestaurantID: "r1", UserID: "user-1", CreatedAt: syncNow},
		{ID: utils.FavoriteID("user-1", "missing"), RestaurantID: "missing", UserID: "user-1", CreatedAt: syncNow},
	}, nil)

	report, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tables[1].Pulled)

	favorites, err := storages.Favorites.GetFavorites(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "r1", favorites[0].RestaurantID)
}

func TestClientSyncService_Sync_FavoritesSkippedWithoutUser(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	require.NoError(t, storages.Catalog.UpsertRecords(ctx, record("r1")))
	_, err := storages.Favorites.AddFavorite(ctx, "someone", "r1")
	require.NoError(t, err)

	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return(nil, nil)

	report, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, report.Tables[1].Skipped)

	n, err := storages.Favorites.CountPendingFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ── single-flight ────────────────────────────────────────────────────────────

func TestClientSyncService_Sync_SingleFlight(t *testing.T) {
	svc, _, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	entered := make(chan struct{})
	release := make(chan struct{})
	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *time.Time) ([]models.CatalogRecord, error) {
			close(entered)
			<-release
			return nil, nil
		}).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sync(ctx)
		done <- err
	}()

	<-entered
	assert.True(t, svc.InProgress())

	_, err := svc.Sync(ctx)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)

	assert.False(t, svc.InProgress())
	assert.Equal(t, int64(2), svc.Requested())
	assert.Equal(t, int64(1), svc.Executed())
}

// ── connectivity ─────────────────────────────────────────────────────────────

func TestClientSyncService_OnConnectivityChange_TriggersOnTransition(t *testing.T) {
	svc, _, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	svc.OnConnectivityChange(ctx, true) // offline -> online
	svc.wait()
	svc.OnConnectivityChange(ctx, true) // online -> online: без синхронизации
	svc.wait()
	svc.OnConnectivityChange(ctx, false)
	svc.OnConnectivityChange(ctx, true)
	svc.wait()

	assert.Equal(t, int64(2), svc.Executed())
}

func TestClientSyncService_OnConnectivityChange_DroppedWhileSyncing(t *testing.T) {
	svc, _, remote := newTestSyncSvc(t)
	ctx := context.Background()
	withoutUser(remote)

	entered := make(chan struct{})
	release := make(chan struct{})
	remote.EXPECT().FetchRecordsUpdatedAfter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *time.Time) ([]models.CatalogRecord, error) {
			close(entered)
			<-release
			return nil, nil
		}).Times(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Sync(ctx)
	}()
	<-entered

	svc.OnConnectivityChange(ctx, true)
	svc.wait()

	close(release)
	<-done

	// запрошено больше, чем выполнено
	assert.Equal(t, int64(2), svc.Requested())
	assert.Equal(t, int64(1), svc.Executed())
}

func TestClientSyncService_Sync_StoreFailure(t *testing.T) {
	svc, storages, remote := newTestSyncSvc(t)
	withoutUser(remote)
	require.NoError(t, storages.Close())

	_, err := svc.Sync(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSyncInProgress))
}
