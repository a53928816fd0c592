package workers

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const (
	DefaultAddressConcurrency = 3

	// AddressUnavailable is cached for records with neither a usable name
	// nor coordinates.
	AddressUnavailable = "Address unavailable"

	// minNameAddressLength is the length a name remainder must exceed to be
	// taken as an address.
	minNameAddressLength = 10
)

// AddressQueue resolves display addresses for catalog records with at most
// limit resolutions running at once. Finished resolutions immediately pull
// the next queued record.
type AddressQueue struct {
	geocoder adapter.Geocoder
	logger   *logger.Logger
	limit    int
	slots    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	pending    []models.CatalogRecord
	claimed    map[string]struct{}
	inFlight   map[string]struct{}
	cache      map[string]string
	active     int
	peak       int
	generation uint64
}

// NewAddressQueue creates a queue backed by geocoder. A non-positive limit
// defaults to DefaultAddressConcurrency.
func NewAddressQueue(geocoder adapter.Geocoder, limit int, log *logger.Logger) *AddressQueue {
	if limit <= 0 {
		limit = DefaultAddressConcurrency
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &AddressQueue{
		geocoder: geocoder,
		logger:   log,
		limit:    limit,
		slots:    semaphore.NewWeighted(int64(limit)),
		ctx:      ctx,
		cancel:   cancel,
		claimed:  make(map[string]struct{}),
		inFlight: make(map[string]struct{}),
		cache:    make(map[string]string),
	}
}

// Enqueue queues records whose address is neither cached nor already
// claimed and starts as many resolutions as free slots allow. A record that
// already carries an address is cached directly.
func (q *AddressQueue) Enqueue(records ...models.CatalogRecord) {
	q.mu.Lock()
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		if _, ok := q.cache[record.ID]; ok {
			continue
		}
		if _, ok := q.claimed[record.ID]; ok {
			continue
		}
		if record.Address != nil && strings.TrimSpace(*record.Address) != "" {
			q.cache[record.ID] = strings.TrimSpace(*record.Address)
			continue
		}

		q.claimed[record.ID] = struct{}{}
		q.pending = append(q.pending, record)
	}
	q.mu.Unlock()

	q.drain()
}

// Reset drops queued records and forgets claims. Resolutions already
// running finish and still store their result.
func (q *AddressQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := len(q.pending)
	q.pending = nil
	q.claimed = make(map[string]struct{})
	q.inFlight = make(map[string]struct{})
	q.generation++

	q.logger.Debug().Str("func", "AddressQueue.Reset").Int("dropped", dropped).Msg("address queue reset")
}

// drain starts resolutions while slots are free and records are queued.
func (q *AddressQueue) drain() {
	q.mu.Lock()
	var batch []models.CatalogRecord
	for len(q.pending) > 0 {
		record := q.pending[0]
		if _, ok := q.cache[record.ID]; ok {
			q.pending = q.pending[1:]
			delete(q.claimed, record.ID)
			continue
		}
		if !q.slots.TryAcquire(1) {
			break
		}
		q.pending = q.pending[1:]
		q.inFlight[record.ID] = struct{}{}
		q.active++
		q.peak = max(q.peak, q.active)
		batch = append(batch, record)
	}
	generation := q.generation
	q.wg.Add(len(batch))
	q.mu.Unlock()

	for _, record := range batch {
		go func() {
			defer q.wg.Done()
			q.finish(record.ID, q.resolve(record), generation)
		}()
	}
}

func (q *AddressQueue) finish(id, address string, generation uint64) {
	q.mu.Lock()
	q.cache[id] = address
	if generation == q.generation {
		delete(q.inFlight, id)
		delete(q.claimed, id)
	}
	q.active--
	q.mu.Unlock()

	q.slots.Release(1)
	q.drain()
}

// resolve derives the address from the record name when possible and falls
// back to reverse geocoding, then to the formatted coordinates.
func (q *AddressQueue) resolve(record models.CatalogRecord) string {
	if address, ok := AddressFromName(record.Name); ok {
		return address
	}
	if !record.HasCoordinates() {
		return AddressUnavailable
	}

	latitude, longitude := *record.Latitude, *record.Longitude
	address, err := q.geocoder.Reverse(q.ctx, latitude, longitude)
	if err != nil {
		q.logger.Debug().Err(err).
			Str("func", "AddressQueue.resolve").
			Str("id", record.ID).
			Msg("reverse geocoding failed, using coordinates")
		return CoordinatesAddress(latitude, longitude)
	}
	return address
}

// AddressFromName returns the part of a composite "<name>, <street>, <city>"
// name after the first segment when it is longer than 10 characters.
func AddressFromName(name string) (string, bool) {
	_, rest, found := strings.Cut(name, ",")
	if !found {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if len(rest) <= minNameAddressLength {
		return "", false
	}
	return rest, true
}

// CoordinatesAddress formats coordinates as "lat, lon" with 4 decimals.
func CoordinatesAddress(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f, %.4f", latitude, longitude)
}

func (q *AddressQueue) Address(id string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	address, ok := q.cache[id]
	return address, ok
}

func (q *AddressQueue) Addresses() map[string]string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return maps.Clone(q.cache)
}

// Stats returns a snapshot of the queue. Active counts resolutions started
// before the last Reset too; InFlight only those of the current generation.
func (q *AddressQueue) Stats() models.AddressQueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return models.AddressQueueStats{
		Limit:    q.limit,
		Active:   q.active,
		Pending:  len(q.pending),
		InFlight: len(q.inFlight),
		Peak:     q.peak,
		Resolved: len(q.cache),
	}
}

// Wait blocks until no resolution is running.
func (q *AddressQueue) Wait() {
	q.wg.Wait()
}

// Close cancels running geocoder calls and waits for them to return.
func (q *AddressQueue) Close() {
	q.Reset()
	q.cancel()
	q.Wait()
}
