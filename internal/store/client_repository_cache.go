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

type cacheRepository struct {
	*DB
	logger *logger.Logger
}

func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *cacheRepository) PutEntry(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	if _, err := c.ExecContext(ctx, putCacheEntry, key, value, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cacheRepository.PutEntry").
			Str("key", key).
			Msg("failed to put cache entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *cacheRepository) GetEntry(ctx context.Context, key string) (models.CacheEntry, error) {
	var entry models.CacheEntry
	err := c.QueryRowContext(ctx, getCacheEntry, key).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CacheEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return models.CacheEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return entry, nil
}

func (c *cacheRepository) DeleteByPrefix(ctx context.Context, prefixes ...string) (int64, error) {
	if len(prefixes) == 0 {
		return 0, nil
	}

	deleted, err := c.exec(ctx, sq.Delete(tableCacheEntries).Where(keyPrefixes(prefixes)))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cacheRepository.DeleteByPrefix").
			Strs("prefixes", prefixes).
			Msg("failed to delete cache entries")
		return 0, err
	}
	return deleted, nil
}

func (c *cacheRepository) SizeByPrefix(ctx context.Context, prefixes ...string) (int64, error) {
	if len(prefixes) == 0 {
		return 0, nil
	}

	sqlQuery, args, err := sq.Select("COALESCE(SUM(LENGTH(value)), 0)").
		From(tableCacheEntries).
		Where(keyPrefixes(prefixes)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var size int64
	if err = c.QueryRowContext(ctx, sqlQuery, args...).Scan(&size); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return size, nil
}
