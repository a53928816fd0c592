// Package workers provides the background machinery of the catalog mirror:
// the address resolution queue, the connectivity monitor and a Workers
// aggregate that starts and stops long-running workers together.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns; the work itself happens in goroutines
// owned by the worker until ctx is cancelled or Stop is called. Stop blocks
// until those goroutines have exited.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	}
//
//	func (w *MyWorker) Stop() { w.cancel() }
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Pinger checks that the remote dataset is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
