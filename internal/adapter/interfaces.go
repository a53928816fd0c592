// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for talking to the
// remote catalog dataset and to the reverse geocoding service.
//
// [RemoteAdapter] decouples the service layer from the remote protocol. Two
// implementations ship with the package: a PostgREST client over HTTP
// ([NewHTTPRemoteAdapter]) and a direct PostgreSQL client
// ([NewPostgresRemoteAdapter]). [Geocoder] is implemented by a Nominatim
// client ([NewNominatimGeocoder]).
//
// Transport failures are mapped to the sentinel values in errors.go so that
// callers can use [errors.Is] without knowing the protocol (for example
// [ErrTransient] for a network failure or a 503).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter is the contract the engine requires from the remote source
// of truth.
type RemoteAdapter interface {
	// SetToken stores the access token attached to subsequent requests. The
	// token subject becomes the user id returned by UserID.
	SetToken(token string)

	// Token returns the stored access token or "".
	Token() string

	// UserID returns the subject of the stored access token. ok is false when
	// no usable token is set.
	UserID() (userID string, ok bool)

	// Ping checks that the remote dataset is reachable.
	Ping(ctx context.Context) error

	// CountRecords returns the total number of catalog records.
	CountRecords(ctx context.Context) (int, error)

	// FetchRecordsRange returns records at positions from..to (inclusive,
	// zero-based) in a stable order.
	FetchRecordsRange(ctx context.Context, from, to int) ([]models.CatalogRecord, error)

	// FetchRecordsPage returns one filtered page. Page.Total is set when the
	// remote reports a total count.
	FetchRecordsPage(ctx context.Context, req models.PageRequest) (models.Page, error)

	// FetchRecordsUpdatedAfter returns records with updated_at after the
	// given time, newest first. A nil time returns every record.
	FetchRecordsUpdatedAfter(ctx context.Context, after *time.Time) ([]models.CatalogRecord, error)

	// UpsertRecord inserts or replaces one complete record.
	UpsertRecord(ctx context.Context, record models.CatalogRecord) error

	// FetchFavoritesUpdatedAfter returns favorites of userID created after
	// the given time, newest first.
	FetchFavoritesUpdatedAfter(ctx context.Context, userID string, after *time.Time) ([]models.FavoriteRecord, error)

	// UpsertFavorite inserts or replaces one favorite.
	UpsertFavorite(ctx context.Context, favorite models.FavoriteRecord) error

	// DeleteFavorite removes a favorite. Deleting a missing favorite succeeds.
	DeleteFavorite(ctx context.Context, favorite models.FavoriteRecord) error
}

// Geocoder resolves coordinates into a display address.
type Geocoder interface {
	Reverse(ctx context.Context, latitude, longitude float64) (string, error)
}
