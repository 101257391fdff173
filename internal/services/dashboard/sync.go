package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"table-orders/internal/models"
)

// OrdersAPI is the slice of the API client the dashboard needs.
type OrdersAPI interface {
	KitchenOrders(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.UpdateStatusResponse, error)
}

// View receives the dashboard's output. RenderOrders replaces the whole
// displayed list; ShowError surfaces a message without touching the list.
type View interface {
	RenderOrders(orders []models.Order)
	ShowError(message string)
}

// Sync drives the kitchen dashboard: it loads orders, applies the status
// and table filters, issues status transitions and keeps the view current
// via auto-refresh. All mutable state is guarded by one mutex; the view is
// only ever called with the mutex held, so renders are serialized.
type Sync struct {
	api  OrdersAPI
	view View

	refreshInterval time.Duration
	debounceDelay   time.Duration

	mu           sync.Mutex
	statusFilter string
	tableQuery   string
	seq          uint64
	debounce     *time.Timer
	autoStop     chan struct{}
}

// New creates a dashboard sync. refreshInterval paces the auto-refresh
// ticker, debounceDelay delays table search re-renders while typing.
func New(api OrdersAPI, view View, refreshInterval, debounceDelay time.Duration) *Sync {
	return &Sync{
		api:             api,
		view:            view,
		refreshInterval: refreshInterval,
		debounceDelay:   debounceDelay,
	}
}

// Load fetches orders with the current status filter and renders them.
// Each call gets a sequence number; a response is rendered only if no
// newer load was issued while it was in flight, so slow responses can
// never overwrite fresher data.
func (s *Sync) Load(ctx context.Context) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	status := s.statusFilter
	s.mu.Unlock()

	orders, err := s.api.KitchenOrders(ctx, status)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	if err != nil {
		s.view.ShowError(err.Error())
		return
	}
	s.view.RenderOrders(s.filterByTableLocked(orders))
}

// SetStatus issues a transition for an order. On success the list is
// reloaded exactly once; on failure the server's message is surfaced and
// nothing is reloaded, the stale card stays visible until the next refresh.
func (s *Sync) SetStatus(ctx context.Context, orderID int, status models.OrderStatus) {
	if _, err := s.api.UpdateStatus(ctx, orderID, status); err != nil {
		s.mu.Lock()
		s.view.ShowError(err.Error())
		s.mu.Unlock()
		return
	}
	s.Load(ctx)
}

// SetStatusFilter switches the server-side status filter and reloads
// immediately. An empty status means all in-flight orders.
func (s *Sync) SetStatusFilter(ctx context.Context, status string) {
	s.mu.Lock()
	s.statusFilter = status
	s.mu.Unlock()

	s.Load(ctx)
}

// SetTableQuery updates the table search text and schedules a fresh load.
// The load is debounced: rapid edits within the debounce window collapse
// into a single fetch, and the sequence guard in Load handles any overlap
// with loads already in flight.
func (s *Sync) SetTableQuery(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tableQuery = query
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.debounceDelay, func() { s.Load(ctx) })
}

// SetAuto starts or stops the auto-refresh loop. Calls that match the
// current state are no-ops.
func (s *Sync) SetAuto(ctx context.Context, on bool) {
	s.mu.Lock()
	if on == (s.autoStop != nil) {
		s.mu.Unlock()
		return
	}
	if !on {
		close(s.autoStop)
		s.autoStop = nil
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.autoStop = stop
	s.mu.Unlock()

	go s.autoRefreshLoop(ctx, stop)
}

// AutoOn reports whether the auto-refresh loop is running.
func (s *Sync) AutoOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoStop != nil
}

// Stop shuts down the auto-refresh loop and any pending debounced render.
func (s *Sync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.autoStop != nil {
		close(s.autoStop)
		s.autoStop = nil
	}
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}

func (s *Sync) autoRefreshLoop(ctx context.Context, stop chan struct{}) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Load(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// filterByTableLocked keeps orders whose table code contains the query,
// case-insensitively. Callers must hold s.mu.
func (s *Sync) filterByTableLocked(orders []models.Order) []models.Order {
	query := strings.ToLower(strings.TrimSpace(s.tableQuery))
	if query == "" {
		return orders
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if strings.Contains(strings.ToLower(order.TableCode), query) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}
