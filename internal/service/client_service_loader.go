package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

const (
	defaultPageSize      = 20
	defaultPrefetchDelay = 1500 * time.Millisecond
)

type clientLoaderService struct {
	remote        adapter.RemoteAdapter
	addresses     AddressScheduler
	logger        *logger.Logger
	pageSize      int
	prefetchDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	// loadMu keeps page requests strictly sequential; loading rejects
	// re-entrant LoadPage calls without waiting.
	loadMu  sync.Mutex
	loading atomic.Bool

	mu         sync.Mutex
	items      []models.CatalogRecord
	seen       map[string]struct{}
	page       int
	hasMore    bool
	search     string
	category   string
	generation uint64
	refreshing bool
	timer      *time.Timer
	closed     bool
}

// NewClientLoaderService creates a paginated loader. A non-positive
// pageSize defaults to 20 and a negative prefetchDelay to 1.5s; a zero
// prefetchDelay disables prefetching.
func NewClientLoaderService(remote adapter.RemoteAdapter, addresses AddressScheduler, pageSize int, prefetchDelay time.Duration, log *logger.Logger) ClientLoaderService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if prefetchDelay < 0 {
		prefetchDelay = defaultPrefetchDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &clientLoaderService{
		remote:        remote,
		addresses:     addresses,
		logger:        log,
		pageSize:      pageSize,
		prefetchDelay: prefetchDelay,
		ctx:           ctx,
		cancel:        cancel,
		seen:          make(map[string]struct{}),
	}
}

func (l *clientLoaderService) LoadPage(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}
	if !l.loading.CompareAndSwap(false, true) {
		return ErrLoadInProgress
	}

	l.loadMu.Lock()
	defer func() {
		l.loading.Store(false)
		l.loadMu.Unlock()
	}()

	return l.load(ctx, n)
}

func (l *clientLoaderService) Refresh(ctx context.Context) error {
	return l.reload(ctx, nil)
}

func (l *clientLoaderService) SetFilter(ctx context.Context, search, category string) error {
	return l.reload(ctx, func() bool {
		changed := l.search != search || l.category != category
		l.search, l.category = search, category
		return changed
	})
}

// reload waits for a running load to finish, then loads page 1. While it
// runs, prefetching is suppressed.
func (l *clientLoaderService) reload(ctx context.Context, apply func() (changed bool)) error {
	l.mu.Lock()
	l.refreshing = true
	l.stopTimerLocked()
	changed := false
	if apply != nil {
		changed = apply()
	}
	if changed {
		l.generation++
		l.items = nil
		l.seen = make(map[string]struct{})
		l.page = 0
		l.hasMore = false
	}
	l.mu.Unlock()

	if changed && l.addresses != nil {
		l.addresses.Reset()
	}

	l.loadMu.Lock()
	l.loading.Store(true)
	defer func() {
		l.mu.Lock()
		l.refreshing = false
		l.mu.Unlock()
		l.loading.Store(false)
		l.loadMu.Unlock()
		l.schedulePrefetch()
	}()

	return l.load(ctx, 1)
}

func (l *clientLoaderService) load(ctx context.Context, n int) error {
	l.mu.Lock()
	req := models.PageRequest{Page: n, PageSize: l.pageSize, Search: l.search, Category: l.category}
	generation := l.generation
	l.mu.Unlock()

	page, err := l.remote.FetchRecordsPage(ctx, req)
	if err != nil {
		l.logger.Warn().Err(err).Str("func", "clientLoaderService.load").Int("page", n).Msg("page load failed")
		return fmt.Errorf("load page %d: %w", n, err)
	}

	l.mu.Lock()
	if generation != l.generation {
		// фильтр сменился, результат устарел
		l.mu.Unlock()
		return nil
	}
	if n == 1 {
		l.items = nil
		l.seen = make(map[string]struct{}, len(page.Items))
	}
	for _, record := range page.Items {
		if _, ok := l.seen[record.ID]; ok {
			continue
		}
		l.seen[record.ID] = struct{}{}
		l.items = append(l.items, record)
	}
	l.page = n
	l.hasMore = hasMorePages(n, l.pageSize, page)
	l.mu.Unlock()

	if l.addresses != nil {
		l.addresses.Enqueue(page.Items...)
	}
	l.schedulePrefetch()
	return nil
}

// schedulePrefetch arms the timer for the next page when more pages exist
// and nothing is loading or refreshing.
func (l *clientLoaderService) schedulePrefetch() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.prefetchDelay == 0 || !l.hasMore || l.refreshing {
		return
	}
	l.stopTimerLocked()
	l.timer = time.AfterFunc(l.prefetchDelay, l.prefetch)
}

func (l *clientLoaderService) prefetch() {
	l.mu.Lock()
	if l.closed || !l.hasMore || l.refreshing {
		l.mu.Unlock()
		return
	}
	next := l.page + 1
	l.mu.Unlock()

	// a running load schedules its own follow-up
	if l.loading.Load() {
		return
	}

	if err := l.LoadPage(l.ctx, next); err != nil && l.ctx.Err() == nil {
		l.logger.Debug().Err(err).Str("func", "clientLoaderService.prefetch").Int("page", next).Msg("prefetch skipped")
	}
}

func (l *clientLoaderService) stopTimerLocked() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *clientLoaderService) Items() []models.CatalogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func (l *clientLoaderService) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

func (l *clientLoaderService) CurrentPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *clientLoaderService) Loading() bool {
	return l.loading.Load()
}

func (l *clientLoaderService) Close() {
	l.mu.Lock()
	l.closed = true
	l.stopTimerLocked()
	l.mu.Unlock()
	l.cancel()
}

// hasMorePages uses the reported total when present and otherwise assumes
// more pages follow a full batch.
func hasMorePages(n, pageSize int, page models.Page) bool {
	if page.Total != nil {
		return n*pageSize < *page.Total
	}
	return len(page.Items) >= pageSize
}
