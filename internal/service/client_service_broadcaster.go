package service

import (
	"slices"
	"sync"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
)

type subscription[T any] struct {
	id       uint64
	listener func(T)
}

// broadcaster delivers values to listeners synchronously, in registration
// order. The last published value is replayed to every new subscriber.
// Listeners must not call Subscribe or Publish on the same broadcaster.
type broadcaster[T any] struct {
	// deliverMu serialises the replay with publishes, so a new subscriber
	// never sees the replayed value after a newer one.
	deliverMu sync.Mutex

	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
	last   T
	logger *logger.Logger
}

func newBroadcaster[T any](initial T, log *logger.Logger) *broadcaster[T] {
	return &broadcaster[T]{last: initial, logger: log}
}

// Subscribe registers listener and calls it with the last published value.
func (b *broadcaster[T]) Subscribe(listener func(T)) func() {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, listener: listener})
	current := b.last
	b.mu.Unlock()

	b.deliver(listener, current)

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

// Publish stores value and calls every listener registered at the time of
// the call.
func (b *broadcaster[T]) Publish(value T) {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	b.mu.Lock()
	b.last = value
	subs := slices.Clone(b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		b.deliver(sub.listener, value)
	}
}

func (b *broadcaster[T]) subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *broadcaster[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = slices.DeleteFunc(b.subs, func(s subscription[T]) bool { return s.id == id })
}

func (b *broadcaster[T]) deliver(listener func(T), value T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("func", "broadcaster.deliver").
				Interface("panic", r).
				Msg("listener panicked")
		}
	}()
	listener(value)
}
