// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the engine and blocks until ctx is cancelled or the user
	// quits the dashboard.
	Run(ctx context.Context) error

	// Close releases the local store and remote connections.
	Close() error
}
