// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CacheStatus describes the state of the bulk offline cache. It is persisted
// verbatim as JSON under a single key and published to subscribers after
// every mutation.
type CacheStatus struct {
	IsDownloading bool `json:"isDownloading"`

	// DownloadProgress is an integer percentage in [0, 100].
	DownloadProgress int `json:"downloadProgress"`

	TotalItems      int        `json:"totalItems"`
	DownloadedItems int        `json:"downloadedItems"`
	CacheSize       int64      `json:"cacheSize"`
	LastUpdated     *time.Time `json:"lastUpdated"`
	IsComplete      bool       `json:"isComplete"`
	Error           *string    `json:"error,omitempty"`
}

// ReadyForOffline reports whether the cache holds a complete, error-free
// snapshot with at least one item.
func (s CacheStatus) ReadyForOffline() bool {
	return s.IsComplete && s.DownloadedItems > 0 && s.Error == nil
}

// CacheEntry is one row of the durable key/value cache.
type CacheEntry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
