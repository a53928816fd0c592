package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
)

const defaultConnectivityInterval = 10 * time.Second

// ConnectivityMonitor probes the remote dataset on an interval and reports
// connectivity changes to a listener, typically
// ClientSyncService.OnConnectivityChange.
type ConnectivityMonitor struct {
	pinger   Pinger
	listener func(ctx context.Context, online bool)
	interval time.Duration
	logger   *logger.Logger

	online atomic.Bool
	known  atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConnectivityMonitor(pinger Pinger, listener func(ctx context.Context, online bool), interval time.Duration, log *logger.Logger) *ConnectivityMonitor {
	if interval <= 0 {
		interval = defaultConnectivityInterval
	}
	return &ConnectivityMonitor{
		pinger:   pinger,
		listener: listener,
		interval: interval,
		logger:   log,
	}
}

// Run probes once immediately and then on every tick.
func (m *ConnectivityMonitor) Run(ctx context.Context) {
	m.Stop()

	m.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.interval)
		defer t.Stop()

		m.Probe(runCtx)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-t.C:
				m.Probe(runCtx)
			}
		}
	}()
}

func (m *ConnectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Probe pings the remote once and notifies the listener when the state
// changed or was unknown. Only transient failures count as offline; an
// error such as 401 proves the remote is reachable.
func (m *ConnectivityMonitor) Probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.pinger.Ping(pingCtx)
	online := err == nil || !adapter.IsTransient(err)
	if ctx.Err() != nil {
		return m.online.Load()
	}

	previous := m.online.Swap(online)
	if m.known.Swap(true) && previous == online {
		return online
	}

	m.logger.Info().
		Str("func", "ConnectivityMonitor.Probe").
		Bool("online", online).
		AnErr("ping_error", err).
		Msg("connectivity changed")
	if m.listener != nil {
		m.listener(ctx, online)
	}
	return online
}

// Online returns the last probed state.
func (m *ConnectivityMonitor) Online() bool {
	return m.online.Load()
}
