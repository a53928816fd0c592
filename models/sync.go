// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncMetadata is the per-table sync bookkeeping row.
type SyncMetadata struct {
	TableName string `json:"table_name"`

	// LastSyncTimestamp is nil until the first successful pull. It is set to
	// the wall clock at the end of a pull, not to the newest remote
	// updated_at observed.
	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`

	PendingChanges int `json:"pending_changes"`

	// Conflicts is always 0: conflict detection is not implemented.
	Conflicts int `json:"conflicts"`
}

// ConflictResolution is the resolution recorded for a ConflictRecord.
type ConflictResolution string

const (
	ResolutionLocal  ConflictResolution = "local"
	ResolutionServer ConflictResolution = "server"
	ResolutionManual ConflictResolution = "manual"
)

// ConflictRecord stores both sides of a detected local/remote divergence.
//
// The structure and its table exist for bookkeeping only; the sync
// coordinator never creates ConflictRecords, and a concurrent edit on both
// sides is silently resolved by whichever side syncs last.
type ConflictRecord struct {
	ID         int64              `json:"id"`
	TableName  string             `json:"table_name"`
	RowID      string             `json:"row_id"`
	LocalData  json.RawMessage    `json:"local_data"`
	ServerData json.RawMessage    `json:"server_data"`
	Resolution ConflictResolution `json:"resolution"`
	ResolvedAt *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// TableSyncReport summarises one table's leg of a sync run.
type TableSyncReport struct {
	Table   string `json:"table"`
	Pulled  int    `json:"pulled"`
	Pushed  int    `json:"pushed"`
	Failed  int    `json:"failed"`
	Skipped bool   `json:"skipped,omitempty"`
}

// SyncReport is returned by a completed sync run.
type SyncReport struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Tables     []TableSyncReport `json:"tables"`
}
