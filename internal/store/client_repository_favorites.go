package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/utils"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type favoriteRepository struct {
	*DB
	logger *logger.Logger
}

func NewFavoriteRepository(db *DB, logger *logger.Logger) FavoriteRepository {
	return &favoriteRepository{
		DB:     db,
		logger: logger,
	}
}

func (f *favoriteRepository) AddFavorite(ctx context.Context, userID, recordID string) (models.FavoriteRecord, error) {
	now := time.Now().UTC()
	favorite := models.FavoriteRecord{
		ID:           utils.FavoriteID(userID, recordID),
		RestaurantID: recordID,
		UserID:       userID,
		CreatedAt:    now,
		SyncStatus:   models.FavoritePending,
		LastModified: now,
	}

	_, err := f.ExecContext(ctx, addFavorite,
		favorite.ID,
		favorite.RestaurantID,
		favorite.UserID,
		favorite.CreatedAt,
		favorite.LastModified,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.FavoriteRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "favoriteRepository.AddFavorite").
			Str("record_id", recordID).
			Msg("failed to add favorite")
		return models.FavoriteRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return favorite, nil
}

func (f *favoriteRepository) RemoveFavorite(ctx context.Context, userID, recordID string) error {
	res, err := f.ExecContext(ctx, removeFavorite, time.Now().UTC(), utils.FavoriteID(userID, recordID))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "favoriteRepository.RemoveFavorite").
			Str("record_id", recordID).
			Msg("failed to tombstone favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (f *favoriteRepository) GetFavorites(ctx context.Context, userID string) ([]models.FavoriteRecord, error) {
	return f.selectFavorites(ctx, f.selectBuilder().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.NotEq{"sync_status": string(models.FavoriteDeleted)}).
		OrderBy("created_at DESC"))
}

func (f *favoriteRepository) GetPendingFavorites(ctx context.Context, userID string) ([]models.FavoriteRecord, error) {
	return f.selectFavorites(ctx, f.selectBuilder().
		Where(sq.Eq{"user_id": userID}).
		Where(sq.NotEq{"sync_status": string(models.FavoriteSynced)}).
		OrderBy("last_modified"))
}

// MarkFavoritesSynced only touches pending rows, so a favorite tombstoned
// while its upsert was in flight stays a tombstone.
func (f *favoriteRepository) MarkFavoritesSynced(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := f.exec(ctx, sq.Update(tableFavorites).
		Set("sync_status", string(models.FavoriteSynced)).
		Where(sq.Eq{"id": ids, "sync_status": string(models.FavoritePending)}))
	return err
}

// PurgeFavorites physically removes tombstones once the remote deletion is
// confirmed. Rows that are not tombstones are left alone.
func (f *favoriteRepository) PurgeFavorites(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := f.exec(ctx, sq.Delete(tableFavorites).
		Where(sq.Eq{"id": ids, "sync_status": string(models.FavoriteDeleted)}))
	return err
}

func (f *favoriteRepository) UpsertFavorites(ctx context.Context, favorites ...models.FavoriteRecord) (int, error) {
	if len(favorites) == 0 {
		return 0, nil
	}
	log := logger.FromContext(ctx)
	now := time.Now().UTC()
	applied := 0

	err := f.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertFavorite)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
		}
		defer stmt.Close()

		for _, favorite := range favorites {
			if favorite.ID == "" {
				favorite.ID = utils.FavoriteID(favorite.UserID, favorite.RestaurantID)
			}
			if favorite.SyncStatus == "" {
				favorite.SyncStatus = models.FavoriteSynced
			}
			if favorite.LastModified.IsZero() {
				favorite.LastModified = now
			}

			_, err = stmt.ExecContext(ctx,
				favorite.ID,
				favorite.RestaurantID,
				favorite.UserID,
				favorite.CreatedAt.UTC(),
				string(favorite.SyncStatus),
				favorite.LastModified.UTC(),
			)
			if err != nil {
				if isForeignKeyViolation(err) {
					log.Warn().
						Str("func", "favoriteRepository.UpsertFavorites").
						Str("record_id", favorite.RestaurantID).
						Msg("favorite references a record that is not mirrored, skipping")
					continue
				}
				return fmt.Errorf("failed to upsert favorite (id=%s): %w", favorite.ID, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return applied, nil
}

func (f *favoriteRepository) CountFavorites(ctx context.Context) (int, error) {
	return f.count(ctx, sq.Select("COUNT(*)").
		From(tableFavorites).
		Where(sq.NotEq{"sync_status": string(models.FavoriteDeleted)}))
}

func (f *favoriteRepository) CountPendingFavorites(ctx context.Context) (int, error) {
	return f.count(ctx, sq.Select("COUNT(*)").
		From(tableFavorites).
		Where(sq.NotEq{"sync_status": string(models.FavoriteSynced)}))
}

func (f *favoriteRepository) selectBuilder() sq.SelectBuilder {
	return sq.Select(favoriteColumns...).From(tableFavorites)
}

func (f *favoriteRepository) selectFavorites(ctx context.Context, query sq.SelectBuilder) ([]models.FavoriteRecord, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "favoriteRepository.selectFavorites").
			Msg("failed to query favorites")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	favorites := make([]models.FavoriteRecord, 0)
	for rows.Next() {
		var (
			favorite   models.FavoriteRecord
			syncStatus string
		)
		if err = rows.Scan(
			&favorite.ID,
			&favorite.RestaurantID,
			&favorite.UserID,
			&favorite.CreatedAt,
			&syncStatus,
			&favorite.LastModified,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		favorite.SyncStatus = models.FavoriteSyncStatus(syncStatus)
		favorites = append(favorites, favorite)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return favorites, nil
}
