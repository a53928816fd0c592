package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-catalog-mirror/internal/config"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

var remoteRestaurantColumns = []string{
	"id",
	"name",
	"description",
	"address",
	"latitude",
	"longitude",
	"category",
	"price_range",
	"rating",
	"image_url",
	"created_at",
	"updated_at",
}

var remoteFavoriteColumns = []string{"id", "restaurant_id", "user_id", "created_at"}

// postgresRemoteAdapter reads and writes the remote dataset directly over a
// PostgreSQL connection.
type postgresRemoteAdapter struct {
	tokenHolder

	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewPostgresRemoteAdapter opens a pgx connection pool to
// adapterCfg.PostgresDSN and pings it.
func NewPostgresRemoteAdapter(ctx context.Context, adapterCfg config.ClientAdapter, log *logger.Logger) (RemoteAdapter, error) {
	db, err := sql.Open("pgx", adapterCfg.PostgresDSN)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresRemoteAdapter").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}
	db.SetMaxOpenConns(4)

	pingCtx := ctx
	if adapterCfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, adapterCfg.RequestTimeout)
		defer cancel()
	}
	if err = db.PingContext(pingCtx); err != nil {
		log.Err(err).Str("func", "NewPostgresRemoteAdapter").Msg("error connecting database (ping)")
		_ = db.Close()
		return nil, mapPostgresError("ping", err)
	}
	log.Info().Str("func", "NewPostgresRemoteAdapter").Msg("connected to remote database successfully")

	return newPostgresRemoteAdapter(db, log), nil
}

func newPostgresRemoteAdapter(db *sql.DB, log *logger.Logger) *postgresRemoteAdapter {
	return &postgresRemoteAdapter{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  log,
	}
}

func (p *postgresRemoteAdapter) Ping(ctx context.Context) error {
	return mapPostgresError("ping", p.db.PingContext(ctx))
}

func (p *postgresRemoteAdapter) CountRecords(ctx context.Context) (int, error) {
	return p.count(ctx, p.builder.Select("COUNT(*)").From("restaurants"))
}

func (p *postgresRemoteAdapter) FetchRecordsRange(ctx context.Context, from, to int) ([]models.CatalogRecord, error) {
	if to < from {
		return []models.CatalogRecord{}, nil
	}

	return p.selectRecords(ctx, p.builder.Select(remoteRestaurantColumns...).
		From("restaurants").
		OrderBy("id").
		Limit(uint64(to-from+1)).
		Offset(uint64(from)))
}

func (p *postgresRemoteAdapter) FetchRecordsPage(ctx context.Context, req models.PageRequest) (models.Page, error) {
	where := sq.And{}
	if search := strings.TrimSpace(req.Search); search != "" {
		pattern := "%" + search + "%"
		where = append(where, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		where = append(where, sq.Eq{"category": category})
	}

	total, err := p.count(ctx, p.builder.Select("COUNT(*)").From("restaurants").Where(where))
	if err != nil {
		return models.Page{}, err
	}

	records, err := p.selectRecords(ctx, p.builder.Select(remoteRestaurantColumns...).
		From("restaurants").
		Where(where).
		OrderBy("name", "id").
		Limit(uint64(req.PageSize)).
		Offset(uint64(req.Offset())))
	if err != nil {
		return models.Page{}, err
	}

	return models.Page{Items: records, Total: &total}, nil
}

func (p *postgresRemoteAdapter) FetchRecordsUpdatedAfter(ctx context.Context, after *time.Time) ([]models.CatalogRecord, error) {
	query := p.builder.Select(remoteRestaurantColumns...).
		From("restaurants").
		OrderBy("updated_at DESC")
	if after != nil {
		query = query.Where(sq.Gt{"updated_at": after.UTC()})
	}
	return p.selectRecords(ctx, query)
}

func (p *postgresRemoteAdapter) UpsertRecord(ctx context.Context, record models.CatalogRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	query := p.builder.Insert("restaurants").
		Columns(remoteRestaurantColumns...).
		Values(
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
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			category = EXCLUDED.category,
			price_range = EXCLUDED.price_range,
			rating = EXCLUDED.rating,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at`)

	return p.exec(ctx, "upsert record", query)
}

func (p *postgresRemoteAdapter) FetchFavoritesUpdatedAfter(ctx context.Context, userID string, after *time.Time) ([]models.FavoriteRecord, error) {
	query := p.builder.Select(remoteFavoriteColumns...).
		From("favorites").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if after != nil {
		query = query.Where(sq.Gt{"created_at": after.UTC()})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build favorites query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, mapPostgresError("fetch favorites", err)
	}
	defer rows.Close()

	favorites := make([]models.FavoriteRecord, 0)
	for rows.Next() {
		var favorite models.FavoriteRecord
		if err = rows.Scan(&favorite.ID, &favorite.RestaurantID, &favorite.UserID, &favorite.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err = rows.Err(); err != nil {
		return nil, mapPostgresError("fetch favorites", err)
	}

	return validateFavorites(p.logger, favorites), nil
}

func (p *postgresRemoteAdapter) UpsertFavorite(ctx context.Context, favorite models.FavoriteRecord) error {
	query := p.builder.Insert("favorites").
		Columns(remoteFavoriteColumns...).
		Values(favorite.ID, favorite.RestaurantID, favorite.UserID, favorite.CreatedAt.UTC()).
		Suffix("ON CONFLICT (id) DO NOTHING")
	return p.exec(ctx, "upsert favorite", query)
}

func (p *postgresRemoteAdapter) DeleteFavorite(ctx context.Context, favorite models.FavoriteRecord) error {
	return p.exec(ctx, "delete favorite", p.builder.Delete("favorites").Where(sq.Eq{"id": favorite.ID}))
}

func (p *postgresRemoteAdapter) count(ctx context.Context, query sq.SelectBuilder) (int, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err = p.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&n); err != nil {
		return 0, mapPostgresError("count records", err)
	}
	return n, nil
}

func (p *postgresRemoteAdapter) exec(ctx context.Context, op string, query sq.Sqlizer) error {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build %s query: %w", op, err)
	}

	if _, err = p.db.ExecContext(ctx, sqlQuery, args...); err != nil {
		p.logger.Err(err).Str("func", "postgresRemoteAdapter.exec").Str("op", op).Msg("remote write failed")
		return mapPostgresError(op, err)
	}
	return nil
}

func (p *postgresRemoteAdapter) selectRecords(ctx context.Context, query sq.SelectBuilder) ([]models.CatalogRecord, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build records query: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, mapPostgresError("fetch records", err)
	}
	defer rows.Close()

	records := make([]models.CatalogRecord, 0)
	for rows.Next() {
		var record models.CatalogRecord
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
		); err != nil {
			p.logger.Warn().Err(err).Str("func", "postgresRemoteAdapter.selectRecords").Msg("skipping unreadable row")
			continue
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, mapPostgresError("fetch records", err)
	}

	return validateRecords(p.logger, records), nil
}
