package kitchen

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"kiosk-gateway/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("order not on the board")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Backend is the admin surface of the platform the board synchronizes
// against.
type Backend interface {
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
}

// Config tunes the board's polling behavior.
type Config struct {
	// PollInterval is the fixed refresh cadence.
	PollInterval time.Duration
	// OrderLimit bounds how many recent orders a refresh fetches.
	OrderLimit int
	// LateAfter is how long an order may wait before it is flagged late.
	LateAfter time.Duration
}

// Board is the kitchen status board: a polled working set of active
// orders (pending or preparing) with optimistic status advancement.
// A failed advance is recovered by discarding local state and
// re-fetching, never by patching fields back.
type Board struct {
	backend Backend
	cfg     Config
	log     *slog.Logger

	mu        sync.RWMutex
	orders    []models.Order
	lastFetch time.Time

	refreshing atomic.Bool
}

func NewBoard(backend Backend, cfg Config, log *slog.Logger) *Board {
	return &Board{
		backend: backend,
		cfg:     cfg,
		log:     log,
	}
}

// Run refreshes the board once immediately and then on the configured
// interval until ctx is cancelled. A tick that arrives while a previous
// refresh is still in flight is skipped rather than stacked.
func (b *Board) Run(ctx context.Context) {
	if err := b.Refresh(ctx); err != nil {
		b.log.Error("initial board refresh failed", "error", err)
	}

	ticker := time.NewTicker(b.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.Refresh(ctx); err != nil {
				if errors.Is(err, errRefreshInFlight) {
					b.log.Debug("skipping poll tick, refresh still in flight")
					continue
				}
				// Keep the stale working set; the next tick retries.
				b.log.Error("board refresh failed", "error", err)
			}
		}
	}
}

var errRefreshInFlight = errors.New("refresh already in flight")

// Refresh fetches the recent orders, keeps only the active ones, and
// atomically replaces the working set. Only one refresh runs at a time.
func (b *Board) Refresh(ctx context.Context) error {
	if !b.refreshing.CompareAndSwap(false, true) {
		return errRefreshInFlight
	}
	defer b.refreshing.Store(false)

	orders, err := b.backend.ListOrders(ctx, b.cfg.OrderLimit)
	if err != nil {
		return err
	}

	active := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status.Active() {
			active = append(active, o)
		}
	}

	b.mu.Lock()
	b.orders = active
	b.lastFetch = time.Now()
	b.mu.Unlock()

	return nil
}

// Advance moves an order from one status to the next. The local copy is
// updated before the platform call resolves so the board stays
// responsive under a busy kitchen; if the call fails the optimistic
// value is discarded and the authoritative state re-fetched.
func (b *Board) Advance(ctx context.Context, orderID int64, from, to models.OrderStatus) error {
	if !validTransition(from, to) {
		return ErrInvalidTransition
	}

	b.mu.Lock()
	idx := -1
	for i := range b.orders {
		if b.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		b.mu.Unlock()
		return ErrOrderNotFound
	}
	if !b.orders[idx].Status.Is(from) {
		b.mu.Unlock()
		return ErrInvalidTransition
	}
	b.orders[idx].Status = to
	b.mu.Unlock()

	if err := b.backend.UpdateOrderStatus(ctx, orderID, to); err != nil {
		b.log.Error("status update rejected, re-syncing board",
			"order_id", orderID, "from", from, "to", to, "error", err)
		if refreshErr := b.Refresh(ctx); refreshErr != nil && !errors.Is(refreshErr, errRefreshInFlight) {
			b.log.Error("board re-sync failed", "error", refreshErr)
		}
		return err
	}

	b.log.Info("order status advanced", "order_id", orderID, "from", from, "to", to)
	return nil
}

// validTransition allows only the board-reachable chain
// pending -> preparing -> ready.
func validTransition(from, to models.OrderStatus) bool {
	switch {
	case from.Is(models.StatusPending) && to.Is(models.StatusPreparing):
		return true
	case from.Is(models.StatusPreparing) && to.Is(models.StatusReady):
		return true
	}
	return false
}

// BoardOrder is an order decorated with render-time timing info.
type BoardOrder struct {
	models.Order
	ElapsedMinutes int  `json:"elapsed_minutes"`
	Late           bool `json:"late"`
}

// Snapshot is a point-in-time view of the board.
type Snapshot struct {
	Orders    []BoardOrder `json:"orders"`
	LastFetch time.Time    `json:"last_fetch"`
}

// SnapshotAt returns the current working set with elapsed minutes and
// the late flag computed against now. Timing is recomputed on every
// read, never stored.
func (b *Board) SnapshotAt(now time.Time) Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := Snapshot{
		Orders:    make([]BoardOrder, 0, len(b.orders)),
		LastFetch: b.lastFetch,
	}
	for _, o := range b.orders {
		elapsed := now.Sub(o.CreatedAt)
		out.Orders = append(out.Orders, BoardOrder{
			Order:          o,
			ElapsedMinutes: int(elapsed.Minutes()),
			Late:           elapsed > b.cfg.LateAfter,
		})
	}
	return out
}
