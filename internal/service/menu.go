package service

import (
	"context"
	"log/slog"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/storage"
)

// MenuService manages the menu collection.
//
// Writes are upserts keyed by the caller-supplied id: adding an item with
// an existing id silently replaces it. Name and price validation is the
// front end's job, not this layer's.
type MenuService struct {
	store storage.Store
}

// NewMenuService creates a new MenuService with the given storage backend.
func NewMenuService(store storage.Store) *MenuService {
	return &MenuService{store: store}
}

// List returns all menu items, in no particular order.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.store.ListMenuItems(ctx)
	if err != nil {
		metrics.Operations.WithLabelValues("menu", "list", metrics.OutcomeError).Inc()
		slog.Error("List menu items failed", "error", err)
		return nil, err
	}

	metrics.Operations.WithLabelValues("menu", "list", metrics.OutcomeOK).Inc()
	return items, nil
}

// Add inserts or replaces a menu item.
func (s *MenuService) Add(ctx context.Context, item models.MenuItem) error {
	if err := s.store.PutMenuItem(ctx, item); err != nil {
		metrics.Operations.WithLabelValues("menu", "add", metrics.OutcomeError).Inc()
		slog.Error("Add menu item failed", "item_id", item.ID, "error", err)
		return err
	}

	metrics.Operations.WithLabelValues("menu", "add", metrics.OutcomeOK).Inc()
	slog.Info("Menu item added", "item_id", item.ID, "name", item.Name, "price", item.Price)
	return nil
}

// Remove deletes a menu item by id. Removing a missing id is a no-op.
// Orders already referencing the item keep their reference.
func (s *MenuService) Remove(ctx context.Context, id int64) error {
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		metrics.Operations.WithLabelValues("menu", "remove", metrics.OutcomeError).Inc()
		slog.Error("Remove menu item failed", "item_id", id, "error", err)
		return err
	}

	metrics.Operations.WithLabelValues("menu", "remove", metrics.OutcomeOK).Inc()
	slog.Info("Menu item removed", "item_id", id)
	return nil
}
