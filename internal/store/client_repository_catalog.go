package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type catalogRepository struct {
	*DB
	logger *logger.Logger
}

func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	return &catalogRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *catalogRepository) UpsertRecords(ctx context.Context, records ...models.CatalogRecord) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	return c.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertRestaurant)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
		}
		defer stmt.Close()

		for _, record := range records {
			if record.SyncStatus == "" {
				record.SyncStatus = models.RecordSynced
			}
			if record.LastModified.IsZero() {
				record.LastModified = now
			}

			_, err = stmt.ExecContext(ctx,
				record.ID,
				record.Name,
				record.Description,
				record.Address,
				record.Latitude,
				record.Longitude,
				record.Category,
				record.PriceRange,
				record.Rating,
				record.ImageURL,
				record.CreatedAt.UTC(),
				record.UpdatedAt.UTC(),
				string(record.SyncStatus),
				record.LastModified.UTC(),
			)
			if err != nil {
				log.Err(err).
					Str("func", "catalogRepository.UpsertRecords").
					Str("id", record.ID).
					Msg("failed to execute upsert for catalog record")
				return fmt.Errorf("failed to upsert catalog record (id=%s): %w", record.ID, err)
			}
		}
		return nil
	})
}

func (c *catalogRepository) GetRecord(ctx context.Context, id string) (models.CatalogRecord, error) {
	records, err := c.selectRecords(ctx, c.selectBuilder().Where(sq.Eq{"id": id}))
	if err != nil {
		return models.CatalogRecord{}, err
	}
	if len(records) == 0 {
		return models.CatalogRecord{}, ErrRecordNotFound
	}
	return records[0], nil
}

func (c *catalogRepository) GetRecords(ctx context.Context, limit, offset int) ([]models.CatalogRecord, error) {
	query := c.selectBuilder().OrderBy("last_modified DESC", "id")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	if offset > 0 {
		if limit <= 0 {
			query = query.Limit(1<<63 - 1)
		}
		query = query.Offset(uint64(offset))
	}
	return c.selectRecords(ctx, query)
}

func (c *catalogRepository) SearchRecords(ctx context.Context, query string, limit int) ([]models.CatalogRecord, error) {
	pattern := "%" + query + "%"
	builder := c.selectBuilder().
		Where(sq.Or{
			sq.Like{"name": pattern},
			sq.Like{"description": pattern},
		}).
		OrderBy("last_modified DESC", "id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return c.selectRecords(ctx, builder)
}

func (c *catalogRepository) GetPendingRecords(ctx context.Context) ([]models.CatalogRecord, error) {
	return c.selectRecords(ctx, c.selectBuilder().
		Where(sq.NotEq{"sync_status": string(models.RecordSynced)}).
		OrderBy("last_modified"))
}

func (c *catalogRepository) MarkRecordsSynced(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := c.exec(ctx, sq.Update(tableRestaurants).
		Set("sync_status", string(models.RecordSynced)).
		Where(sq.Eq{"id": ids}))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "catalogRepository.MarkRecordsSynced").
			Int("count", len(ids)).
			Msg("failed to mark catalog records synced")
		return err
	}
	return nil
}

func (c *catalogRepository) DeleteRecord(ctx context.Context, id string) error {
	affected, err := c.exec(ctx, sq.Delete(tableRestaurants).Where(sq.Eq{"id": id}))
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrRecordReferenced, id)
		}
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (c *catalogRepository) CountRecords(ctx context.Context) (int, error) {
	return c.count(ctx, sq.Select("COUNT(*)").From(tableRestaurants))
}

func (c *catalogRepository) CountPendingRecords(ctx context.Context) (int, error) {
	return c.count(ctx, sq.Select("COUNT(*)").
		From(tableRestaurants).
		Where(sq.NotEq{"sync_status": string(models.RecordSynced)}))
}

func (c *catalogRepository) selectBuilder() sq.SelectBuilder {
	return sq.Select(restaurantColumns...).From(tableRestaurants)
}

func (c *catalogRepository) selectRecords(ctx context.Context, query sq.SelectBuilder) ([]models.CatalogRecord, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", "catalogRepository.selectRecords").Msg("failed to query catalog records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.CatalogRecord, 0)
	for rows.Next() {
		var (
			record     models.CatalogRecord
			syncStatus string
		)
		if err = rows.Scan(
			&record.ID,
			&record.Name,
			&record.Description,
			&record.Address,
			&record.Latitude,
			&record.Longitude,
			&record.Category,
			&record.PriceRange,
			&record.Rating,
			&record.ImageURL,
			&record.CreatedAt,
			&record.UpdatedAt,
			&syncStatus,
			&record.LastModified,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		record.SyncStatus = models.RecordSyncStatus(syncStatus)
		records = append(records, record)
	}
	if err = rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
