package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type syncMetadataRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncMetadataRepository(db *DB, logger *logger.Logger) SyncMetadataRepository {
	return &syncMetadataRepository{
		DB:     db,
		logger: logger,
	}
}

// GetSyncMetadata returns the bookkeeping row of table. A table that was
// never synced yields a zero row with a nil LastSyncTimestamp.
func (s *syncMetadataRepository) GetSyncMetadata(ctx context.Context, table string) (models.SyncMetadata, error) {
	meta := models.SyncMetadata{TableName: table}

	err := s.QueryRowContext(ctx, getSyncMetadata, table).Scan(
		&meta.TableName,
		&meta.LastSyncTimestamp,
		&meta.PendingChanges,
		&meta.Conflicts,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncMetadata{TableName: table}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncMetadataRepository.GetSyncMetadata").
			Str("table", table).
			Msg("failed to read sync metadata")
		return models.SyncMetadata{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return meta, nil
}

func (s *syncMetadataRepository) SaveSyncMetadata(ctx context.Context, meta models.SyncMetadata) error {
	var lastSync *time.Time
	if meta.LastSyncTimestamp != nil {
		utc := meta.LastSyncTimestamp.UTC()
		lastSync = &utc
	}

	_, err := s.ExecContext(ctx, saveSyncMetadata,
		meta.TableName,
		lastSync,
		meta.PendingChanges,
		meta.Conflicts,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncMetadataRepository.SaveSyncMetadata").
			Str("table", meta.TableName).
			Msg("failed to save sync metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type conflictRepository struct {
	*DB
	logger *logger.Logger
}

func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *conflictRepository) SaveConflict(ctx context.Context, conflict models.ConflictRecord) (int64, error) {
	if conflict.Resolution == "" {
		conflict.Resolution = models.ResolutionManual
	}
	if conflict.CreatedAt.IsZero() {
		conflict.CreatedAt = time.Now().UTC()
	}

	res, err := c.ExecContext(ctx, saveConflict,
		conflict.TableName,
		conflict.RowID,
		string(conflict.LocalData),
		string(conflict.ServerData),
		string(conflict.Resolution),
		conflict.ResolvedAt,
		conflict.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return id, nil
}

func (c *conflictRepository) GetUnresolvedConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	rows, err := c.QueryContext(ctx, getUnresolvedConflicts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conflicts := make([]models.ConflictRecord, 0)
	for rows.Next() {
		var (
			conflict              models.ConflictRecord
			localData, serverData string
			resolution            string
		)
		if err = rows.Scan(
			&conflict.ID,
			&conflict.TableName,
			&conflict.RowID,
			&localData,
			&serverData,
			&resolution,
			&conflict.ResolvedAt,
			&conflict.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		conflict.LocalData = []byte(localData)
		conflict.ServerData = []byte(serverData)
		conflict.Resolution = models.ConflictResolution(resolution)
		conflicts = append(conflicts, conflict)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func (c *conflictRepository) ResolveConflict(ctx context.Context, id int64, resolution models.ConflictResolution, at time.Time) error {
	res, err := c.ExecContext(ctx, resolveConflict, string(resolution), at.UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("conflict %d is unknown or already resolved", id)
	}
	return nil
}
