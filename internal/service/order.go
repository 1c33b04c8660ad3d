package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/storage"
)

var (
	// ErrInvalidTransition is returned when a status update is not a legal
	// forward step (pending -> ready -> served).
	ErrInvalidTransition = errors.New("illegal order status transition")

	// ErrUnknownStatus is returned when a status update names a status that
	// does not exist.
	ErrUnknownStatus = errors.New("unknown order status")
)

// OrderService manages the order collection and enforces the order
// lifecycle. Orders are never deleted; they only move forward through
// pending -> ready -> served.
type OrderService struct {
	store storage.Store
}

// NewOrderService creates a new OrderService with the given storage backend.
func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store}
}

// List returns all orders, in no particular order.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		metrics.Operations.WithLabelValues("order", "list", metrics.OutcomeError).Inc()
		slog.Error("List orders failed", "error", err)
		return nil, err
	}

	metrics.Operations.WithLabelValues("order", "list", metrics.OutcomeOK).Inc()
	return orders, nil
}

// Add inserts a new order. The id is caller-supplied; reusing one replaces
// the previous order. An empty status defaults to pending and a zero
// CreatedAt is filled in by the store.
func (s *OrderService) Add(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.StatusPending
	}

	if err := s.store.PutOrder(ctx, order); err != nil {
		metrics.Operations.WithLabelValues("order", "add", metrics.OutcomeError).Inc()
		slog.Error("Add order failed", "order_id", order.ID, "error", err)
		return err
	}

	metrics.Operations.WithLabelValues("order", "add", metrics.OutcomeOK).Inc()
	slog.Info("Order placed",
		"order_id", order.ID,
		"username", order.Username,
		"items_count", len(order.Items),
		"status", order.Status,
	)
	return nil
}

// UpdateStatus advances an order to newStatus.
//
// The move must be a legal forward step from the order's current status;
// illegal jumps (pending -> served, any backward move, updates to a served
// order) fail with ErrInvalidTransition. Updating a missing order is a
// silent no-op, not an error.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, newStatus models.Status) error {
	if !newStatus.Valid() {
		metrics.Operations.WithLabelValues("order", "update_status", metrics.OutcomeRejected).Inc()
		return fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		metrics.Operations.WithLabelValues("order", "update_status", metrics.OutcomeError).Inc()
		slog.Error("Update order status failed", "order_id", orderID, "error", err)
		return err
	}
	if order == nil {
		metrics.Operations.WithLabelValues("order", "update_status", metrics.OutcomeOK).Inc()
		slog.Warn("Update for unknown order ignored", "order_id", orderID, "status", newStatus)
		return nil
	}

	if !order.Status.CanTransitionTo(newStatus) {
		metrics.Operations.WithLabelValues("order", "update_status", metrics.OutcomeRejected).Inc()
		slog.Warn("Illegal status transition rejected",
			"order_id", orderID,
			"from", order.Status,
			"to", newStatus,
		)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	order.Status = newStatus
	if err := s.store.PutOrder(ctx, order); err != nil {
		metrics.Operations.WithLabelValues("order", "update_status", metrics.OutcomeError).Inc()
		slog.Error("Update order status failed", "order_id", orderID, "error", err)
		return err
	}

	metrics.Operations.WithLabelValues("order", "update_status", metrics.OutcomeOK).Inc()
	slog.Info("Order status updated", "order_id", orderID, "status", newStatus)
	return nil
}
