package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/models"
)

// CatalogRepository persists mirrored catalog records.
type CatalogRepository interface {
	// UpsertRecords inserts or replaces records by id in one transaction.
	// Applying the same record twice leaves one row with the latest values.
	UpsertRecords(ctx context.Context, records ...models.CatalogRecord) error
	GetRecord(ctx context.Context, id string) (models.CatalogRecord, error)
	// GetRecords returns a page of records ordered by last_modified, newest first.
	GetRecords(ctx context.Context, limit, offset int) ([]models.CatalogRecord, error)
	// SearchRecords matches query as a substring of name or description.
	SearchRecords(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error)
	GetPendingRecords(ctx context.Context) ([]models.CatalogRecord, error)
	MarkRecordsSynced(ctx context.Context, ids ...string) error
	// DeleteRecord fails with ErrRecordReferenced while a favorite points at id.
	DeleteRecord(ctx context.Context, id string) error
	CountRecords(ctx context.Context) (int, error)
	CountPendingRecords(ctx context.Context) (int, error)
}

// FavoriteRepository persists user favorites and their tombstones.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, recordID string) (models.FavoriteRecord, error)
	// RemoveFavorite tombstones the favorite; the row stays until PurgeFavorites.
	RemoveFavorite(ctx context.Context, userID, recordID string) error
	GetFavorites(ctx context.Context, userID string) ([]models.FavoriteRecord, error)
	GetPendingFavorites(ctx context.Context, userID string) ([]models.FavoriteRecord, error)
	MarkFavoritesSynced(ctx context.Context, ids ...string) error
	PurgeFavorites(ctx context.Context, ids ...string) error
	// UpsertFavorites stores pulled favorites and returns how many were
	// applied. Rows whose record is not mirrored are skipped.
	UpsertFavorites(ctx context.Context, favorites ...models.FavoriteRecord) (int, error)
	CountFavorites(ctx context.Context) (int, error)
	CountPendingFavorites(ctx context.Context) (int, error)
}

// SyncMetadataRepository persists per-table sync bookkeeping.
type SyncMetadataRepository interface {
	GetSyncMetadata(ctx context.Context, table string) (models.SyncMetadata, error)
	SaveSyncMetadata(ctx context.Context, meta models.SyncMetadata) error
}

// ConflictRepository persists conflict bookkeeping rows. Nothing in the sync
// path writes to it.
type ConflictRepository interface {
	SaveConflict(ctx context.Context, conflict models.ConflictRecord) (int64, error)
	GetUnresolvedConflicts(ctx context.Context) ([]models.ConflictRecord, error)
	ResolveConflict(ctx context.Context, id int64, resolution models.ConflictResolution, at time.Time) error
}

// CacheRepository is the durable key/value cache.
type CacheRepository interface {
	PutEntry(ctx context.Context, key string, value []byte) error
	GetEntry(ctx context.Context, key string) (models.CacheEntry, error)
	DeleteByPrefix(ctx context.Context, prefixes ...string) (int64, error)
	// SizeByPrefix sums the byte length of values whose key has one of prefixes.
	SizeByPrefix(ctx context.Context, prefixes ...string) (int64, error)
}
