package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/storage"
)

// Snapshot is one refresh worth of kitchen state.
type Snapshot struct {
	Orders []models.Order
	Menu   []models.MenuItem
}

// Poller periodically re-reads orders and the menu and hands the result to
// a callback, so the kitchen view stays current without user action.
//
// The loop is a single goroutine, so refreshes never overlap: a read that
// outlasts the interval simply delays the next one.
type Poller struct {
	store    storage.Store
	interval time.Duration
	onUpdate func(Snapshot)
}

// NewPoller creates a poller that calls onUpdate with a fresh snapshot
// every interval.
func NewPoller(store storage.Store, interval time.Duration, onUpdate func(Snapshot)) *Poller {
	return &Poller{
		store:    store,
		interval: interval,
		onUpdate: onUpdate,
	}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. A failed refresh is logged and skipped; the poller keeps
// going.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Poller stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	orders, err := p.store.ListOrders(ctx)
	if err != nil {
		metrics.PollCycles.WithLabelValues(metrics.OutcomeError).Inc()
		slog.Error("Poll refresh failed", "error", err)
		return
	}

	menu, err := p.store.ListMenuItems(ctx)
	if err != nil {
		metrics.PollCycles.WithLabelValues(metrics.OutcomeError).Inc()
		slog.Error("Poll refresh failed", "error", err)
		return
	}

	metrics.PollCycles.WithLabelValues(metrics.OutcomeOK).Inc()
	p.onUpdate(Snapshot{Orders: orders, Menu: menu})
}
