package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

// ClientStorages groups the local mirror repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	Catalog      CatalogRepository
	Favorites    FavoriteRepository
	SyncMetadata SyncMetadataRepository
	Conflicts    ConflictRepository
	Cache        CacheRepository

	db *DB
}

// NewClientStorages initialises the local mirror using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to cfg.DB.DSN, creating the database file
//     if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires every repository to the shared connection.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewClientStoragesFromDB(db, logger), nil
}

// NewClientStoragesFromDB wires repositories to an already opened and
// migrated database.
func NewClientStoragesFromDB(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Catalog:      NewCatalogRepository(db, logger),
		Favorites:    NewFavoriteRepository(db, logger),
		SyncMetadata: NewSyncMetadataRepository(db, logger),
		Conflicts:    NewConflictRepository(db, logger),
		Cache:        NewCacheRepository(db, logger),
		db:           db,
	}
}

// ClearAll wipes every mirror table in one transaction.
func (s *ClientStorages) ClearAll(ctx context.Context) error {
	err := s.db.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range clearAllTables {
			sqlQuery, args, err := sq.Delete(table).ToSql()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("%w: clearing %s: %w", ErrExecutingStatement, table, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "ClientStorages.ClearAll").Msg("failed to clear local mirror")
		return err
	}
	return nil
}

// Stats returns record, favorite and pending-change counts. Pending covers
// both tables; tombstoned favorites count as pending.
func (s *ClientStorages) Stats(ctx context.Context) (models.Stats, error) {
	records, err := s.Catalog.CountRecords(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("count records: %w", err)
	}
	favorites, err := s.Favorites.CountFavorites(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("count favorites: %w", err)
	}
	pendingRecords, err := s.Catalog.CountPendingRecords(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("count pending records: %w", err)
	}
	pendingFavorites, err := s.Favorites.CountPendingFavorites(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("count pending favorites: %w", err)
	}

	return models.Stats{
		Records:   records,
		Favorites: favorites,
		Pending:   pendingRecords + pendingFavorites,
	}, nil
}

// Close releases the underlying connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
