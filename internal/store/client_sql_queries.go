package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	tableRestaurants  = "restaurants"
	tableFavorites    = "favorites"
	tableSyncMetadata = "sync_metadata"
	tableConflicts    = "conflicts"
	tableCacheEntries = "cache_entries"
)

var restaurantColumns = []string{
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
	"sync_status",
	"last_modified",
}

var favoriteColumns = []string{
	"id",
	"restaurant_id",
	"user_id",
	"created_at",
	"sync_status",
	"last_modified",
}

const (
	upsertRestaurant = `
		INSERT INTO restaurants (
			id,
			name,
			description,
			address,
			latitude,
			longitude,
			category,
			price_range,
			rating,
			image_url,
			created_at,
			updated_at,
			sync_status,
			last_modified
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name          = excluded.name,
			description   = excluded.description,
			address       = excluded.address,
			latitude      = excluded.latitude,
			longitude     = excluded.longitude,
			category      = excluded.category,
			price_range   = excluded.price_range,
			rating        = excluded.rating,
			image_url     = excluded.image_url,
			created_at    = excluded.created_at,
			updated_at    = excluded.updated_at,
			sync_status   = excluded.sync_status,
			last_modified = excluded.last_modified;`

	addFavorite = `
		INSERT INTO favorites (id, restaurant_id, user_id, created_at, sync_status, last_modified)
		VALUES (?, ?, ?, ?, 'pending', ?)
		ON CONFLICT (id) DO UPDATE SET
			sync_status   = 'pending',
			last_modified = excluded.last_modified;`

	upsertFavorite = `
		INSERT INTO favorites (id, restaurant_id, user_id, created_at, sync_status, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			restaurant_id = excluded.restaurant_id,
			user_id       = excluded.user_id,
			created_at    = excluded.created_at,
			sync_status   = excluded.sync_status,
			last_modified = excluded.last_modified;`

	removeFavorite = `
		UPDATE favorites
		SET sync_status = 'deleted', last_modified = ?
		WHERE id = ?;`

	getSyncMetadata = `
		SELECT table_name, last_sync_timestamp, pending_changes, conflicts
		FROM sync_metadata
		WHERE table_name = ?;`

	saveSyncMetadata = `
		INSERT INTO sync_metadata (table_name, last_sync_timestamp, pending_changes, conflicts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (table_name) DO UPDATE SET
			last_sync_timestamp = excluded.last_sync_timestamp,
			pending_changes     = excluded.pending_changes,
			conflicts           = excluded.conflicts;`

	saveConflict = `
		INSERT INTO conflicts (table_name, row_id, local_data, server_data, resolution, resolved_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);`

	getUnresolvedConflicts = `
		SELECT id, table_name, row_id, local_data, server_data, resolution, resolved_at, created_at
		FROM conflicts
		WHERE resolved_at IS NULL
		ORDER BY id;`

	resolveConflict = `
		UPDATE conflicts
		SET resolution = ?, resolved_at = ?
		WHERE id = ? AND resolved_at IS NULL;`

	putCacheEntry = `
		INSERT INTO cache_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at;`

	getCacheEntry = `
		SELECT key, value, updated_at
		FROM cache_entries
		WHERE key = ?;`
)

// clearAllTables lists every mirror table in an order that respects the
// favorites -> restaurants foreign key.
var clearAllTables = []string{
	tableFavorites,
	tableRestaurants,
	tableSyncMetadata,
	tableConflicts,
	tableCacheEntries,
}

// keyPrefixes builds an OR of GLOB prefix matches over the cache key.
// GLOB is used instead of LIKE because cache prefixes contain underscores.
func keyPrefixes(prefixes []string) sq.Or {
	or := make(sq.Or, 0, len(prefixes))
	for _, prefix := range prefixes {
		or = append(or, sq.Expr("key GLOB ?", prefix+"*"))
	}
	return or
}
