// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FavoriteSyncStatus describes the sync state of a favorite row.
type FavoriteSyncStatus string

const (
	FavoriteSynced  FavoriteSyncStatus = "synced"
	FavoritePending FavoriteSyncStatus = "pending"

	// FavoriteDeleted marks a tombstone. The row stays in the local store
	// until a sync run confirms the remote deletion.
	FavoriteDeleted FavoriteSyncStatus = "deleted"
)

// FavoriteRecord links a user to a catalog record.
type FavoriteRecord struct {
	// ID is derived deterministically from UserID and RestaurantID, so adding
	// the same favorite twice always addresses the same row.
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`

	SyncStatus   FavoriteSyncStatus `json:"-"`
	LastModified time.Time          `json:"-"`
}

// TableName returns the name of the favorites table.
func (FavoriteRecord) TableName() string {
	return "favorites"
}
