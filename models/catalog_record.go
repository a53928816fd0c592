// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RecordSyncStatus describes where a mirrored catalog record stands relative
// to the remote source of truth.
type RecordSyncStatus string

const (
	// RecordSynced means the local row matches the last pulled or pushed
	// remote state.
	RecordSynced RecordSyncStatus = "synced"

	// RecordPending means the row was modified locally and has not been
	// pushed yet. A pending row always has LastModified newer than the
	// table's last successful sync timestamp.
	RecordPending RecordSyncStatus = "pending"

	// RecordConflict is reserved for conflict bookkeeping. No code path sets
	// it today.
	RecordConflict RecordSyncStatus = "conflict"
)

// CatalogRecord is a single catalog entry (a restaurant) mirrored from the
// remote dataset into the local store.
type CatalogRecord struct {
	// ID is the opaque primary key assigned by the remote dataset.
	ID string `json:"id"`

	// Name is the display name. Some records carry a composite name of the
	// form "<name>, <street>, <city>" from which an address can be derived.
	Name string `json:"name"`

	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Category    string   `json:"category"`
	PriceRange  *string  `json:"price_range,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// SyncStatus and LastModified are local bookkeeping and never sent to
	// the remote dataset.
	SyncStatus   RecordSyncStatus `json:"-"`
	LastModified time.Time        `json:"-"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (r CatalogRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// TableName returns the name of the table that mirrors catalog records both
// locally and remotely.
func (CatalogRecord) TableName() string {
	return "restaurants"
}
