package server

import "context"

// Server defines the lifecycle contract of the control API server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts the
	// server down and returns.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
