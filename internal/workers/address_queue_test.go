package workers

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/mock"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

func located(id string, lat, lon float64) models.CatalogRecord {
	return models.CatalogRecord{ID: id, Name: "Place " + id, Latitude: &lat, Longitude: &lon}
}

// gatedGeocoder blocks every Reverse call until release is closed and
// tracks how many calls run at once.
type gatedGeocoder struct {
	release chan struct{}
	calls   atomic.Int64
	running atomic.Int64
	peak    atomic.Int64
}

func newGatedGeocoder() *gatedGeocoder {
	return &gatedGeocoder{release: make(chan struct{})}
}

func (g *gatedGeocoder) Reverse(ctx context.Context, _, _ float64) (string, error) {
	g.calls.Add(1)
	n := g.running.Add(1)
	defer g.running.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}

	select {
	case <-g.release:
		return "Resolved street", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestAddressQueue_ConcurrencyNeverExceedsLimit(t *testing.T) {
	geo := newGatedGeocoder()
	q := NewAddressQueue(geo, 3, logger.Nop())
	defer q.Close()

	var batch []models.CatalogRecord
	for i := range 10 {
		batch = append(batch, located(strconv.Itoa(i), 1, float64(i)))
	}
	q.Enqueue(batch...)

	require.Eventually(t, func() bool { return geo.running.Load() == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, 3, q.Stats().Active)
	assert.Equal(t, 7, q.Stats().Pending)

	close(geo.release)
	q.Wait()

	assert.Equal(t, int64(10), geo.calls.Load())
	assert.LessOrEqual(t, geo.peak.Load(), int64(3))
	assert.Equal(t, 3, q.Stats().Peak)
	assert.Equal(t, 0, q.Stats().Active)
	assert.Equal(t, 0, q.Stats().InFlight)
	assert.Len(t, q.Addresses(), 10)
}

func TestAddressQueue_FinishedSlotPullsNextRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	geo := mock.NewMockGeocoder(ctrl)

	var mu sync.Mutex
	var order []float64
	geo.EXPECT().Reverse(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ float64, lon float64) (string, error) {
			mu.Lock()
			order = append(order, lon)
			mu.Unlock()
			return "street " + strconv.Itoa(int(lon)), nil
		}).Times(3)

	q := NewAddressQueue(geo, 1, logger.Nop())
	q.Enqueue(located("a", 0, 1), located("b", 0, 2), located("c", 0, 3))
	q.Wait()

	// FIFO при одном слоте
	assert.Equal(t, []float64{1, 2, 3}, order)
	assert.Equal(t, 1, q.Stats().Peak)

	addr, ok := q.Address("c")
	require.True(t, ok)
	assert.Equal(t, "street 3", addr)
}

func TestAddressQueue_Deduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	geo := mock.NewMockGeocoder(ctrl)
	geo.EXPECT().Reverse(gomock.Any(), 10.0, 20.0).Return("Main st", nil).Times(1)

	q := NewAddressQueue(geo, 2, logger.Nop())
	rec := located("dup", 10, 20)

	q.Enqueue(rec, rec)
	q.Enqueue(rec)
	q.Wait()

	// already cached: no second lookup
	q.Enqueue(rec)
	q.Wait()

	addr, ok := q.Address("dup")
	require.True(t, ok)
	assert.Equal(t, "Main st", addr)
}

func TestAddressQueue_ResolutionFallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	geo := mock.NewMockGeocoder(ctrl)
	geo.EXPECT().Reverse(gomock.Any(), 55.75, 37.6173).Return("", errors.New("boom"))

	known := "12 Known Road"
	q := NewAddressQueue(geo, 3, logger.Nop())
	q.Enqueue(
		models.CatalogRecord{ID: "composite", Name: "Pho House, 42 Elm Street, Springfield"},
		models.CatalogRecord{ID: "short", Name: "Cafe, Elm st"},
		models.CatalogRecord{ID: "preset", Name: "Bistro", Address: &known},
		located("failing", 55.75, 37.6173),
	)
	q.Wait()

	want := map[string]string{
		"composite": "42 Elm Street, Springfield",
		"short":     AddressUnavailable,
		"preset":    known,
		"failing":   "55.7500, 37.6173",
	}
	assert.Equal(t, want, q.Addresses())
}

func TestAddressQueue_FailedGeocodeFallsBackToCoordinates(t *testing.T) {
	ctrl := gomock.NewController(t)
	geo := mock.NewMockGeocoder(ctrl)
	geo.EXPECT().Reverse(gomock.Any(), 14.5995, 120.9842).Return("", errors.New("geocoder unavailable")).Times(1)

	lat, lon := 14.5995, 120.9842
	q := NewAddressQueue(geo, DefaultAddressConcurrency, logger.Nop())
	q.Enqueue(models.CatalogRecord{ID: "manila", Name: "Jollibee", Latitude: &lat, Longitude: &lon})
	q.Wait()

	addr, ok := q.Address("manila")
	require.True(t, ok)
	assert.Equal(t, "14.5995, 120.9842", addr)
}

func TestAddressFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "Noodle Bar", ok: false},
		{name: "Noodle Bar, Short st", ok: false},
		{name: "Noodle Bar,   1 Long Street, Town  ", want: "1 Long Street, Town", ok: true},
		{name: ", 1234567890X", want: "1234567890X", ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddressFromName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddressQueue_ResetDropsQueueButKeepsRunningResults(t *testing.T) {
	geo := newGatedGeocoder()
	q := NewAddressQueue(geo, 1, logger.Nop())
	defer q.Close()

	q.Enqueue(located("r1", 1, 1), located("r2", 2, 2), located("r3", 3, 3))
	require.Eventually(t, func() bool { return geo.running.Load() == 1 }, time.Second, time.Millisecond)
	require.Equal(t, 2, q.Stats().Pending)

	q.Reset()
	assert.Equal(t, 0, q.Stats().Pending)
	assert.Equal(t, 0, q.Stats().InFlight)
	assert.Equal(t, 1, q.Stats().Active, "running resolution is not aborted")

	close(geo.release)
	q.Wait()

	_, ok := q.Address("r1")
	assert.True(t, ok)
	_, ok = q.Address("r2")
	assert.False(t, ok)
	assert.Equal(t, int64(1), geo.calls.Load())

	// после сброса запись можно поставить снова
	q.Enqueue(located("r2", 2, 2))
	q.Wait()
	_, ok = q.Address("r2")
	assert.True(t, ok)
}

func TestAddressQueue_FilterChangeWithTwoRunningAndFiveQueued(t *testing.T) {
	geo := newGatedGeocoder()
	q := NewAddressQueue(geo, 2, logger.Nop())
	defer q.Close()

	var recs []models.CatalogRecord
	for i := 1; i <= 7; i++ {
		recs = append(recs, located("r"+strconv.Itoa(i), float64(i), float64(i)))
	}
	q.Enqueue(recs...)
	require.Eventually(t, func() bool { return geo.running.Load() == 2 }, time.Second, time.Millisecond)

	stats := q.Stats()
	require.Equal(t, 2, stats.InFlight)
	require.Equal(t, 5, stats.Pending)

	q.Reset()

	// очередь сброшена сразу, запущенные разрешения продолжаются
	stats = q.Stats()
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 0, stats.InFlight)
	assert.Equal(t, 2, stats.Active)

	close(geo.release)
	q.Wait()

	for _, id := range []string{"r1", "r2"} {
		addr, ok := q.Address(id)
		require.True(t, ok, id)
		assert.Equal(t, "Resolved street", addr)
	}
	for _, id := range []string{"r3", "r4", "r5", "r6", "r7"} {
		_, ok := q.Address(id)
		assert.False(t, ok, id)
	}
	assert.Equal(t, int64(2), geo.calls.Load())
	assert.Equal(t, 0, q.Stats().Active)
}

type instantGeocoder struct{}

func (instantGeocoder) Reverse(_ context.Context, lat, lon float64) (string, error) {
	return CoordinatesAddress(lat, lon) + " street", nil
}

func TestAddressQueue_EnqueueRacingWait(t *testing.T) {
	q := NewAddressQueue(instantGeocoder{}, 3, logger.Nop())
	defer q.Close()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Enqueue(located("w"+strconv.Itoa(w)+"-"+strconv.Itoa(i), float64(i), float64(w)))
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Wait()
			}
		}()
	}
	wg.Wait()
	q.Wait()

	stats := q.Stats()
	assert.Equal(t, 200, stats.Resolved)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 0, stats.Pending)
	assert.LessOrEqual(t, stats.Peak, 3)
}

func TestAddressQueue_CloseCancelsLookups(t *testing.T) {
	geo := newGatedGeocoder()
	q := NewAddressQueue(geo, 2, logger.Nop())

	q.Enqueue(located("x", 1, 2))
	require.Eventually(t, func() bool { return geo.running.Load() == 1 }, time.Second, time.Millisecond)

	q.Close()

	addr, ok := q.Address("x")
	require.True(t, ok)
	assert.Equal(t, "1.0000, 2.0000", addr)
}

func TestAddressQueue_DefaultLimit(t *testing.T) {
	q := NewAddressQueue(newGatedGeocoder(), 0, logger.Nop())
	assert.Equal(t, DefaultAddressConcurrency, q.Stats().Limit)
}
