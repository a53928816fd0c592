package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-catalog-mirror/models"
)

// statusFeed hands CacheStatus updates from the cache service to the
// bubbletea loop. Only the latest status is kept; the listener never blocks
// the publisher.
type statusFeed struct {
	mu   sync.Mutex
	ch   chan models.CacheStatus
	done chan struct{}
	once sync.Once
}

func newStatusFeed() *statusFeed {
	return &statusFeed{
		ch:   make(chan models.CacheStatus, 1),
		done: make(chan struct{}),
	}
}

func (f *statusFeed) push(status models.CacheStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.ch:
	default:
	}
	f.ch <- status
}

// next waits for the following status update. It yields nil once the feed
// is closed.
func (f *statusFeed) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case status := <-f.ch:
			return cacheStatusMsg{status: status}
		case <-f.done:
			return nil
		}
	}
}

func (f *statusFeed) close() {
	f.once.Do(func() { close(f.done) })
}
