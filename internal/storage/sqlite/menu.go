package sqlite

import (
	"context"

	"github.com/tavolo/tavolo/internal/models"
)

// ListMenuItems returns every menu item. Iteration order is whatever the
// database yields; callers must not rely on insertion order.
func (s *SQLiteStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, price, image FROM menu")
	if err != nil {
		return nil, unavailable("list menu items", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Image); err != nil {
			return nil, unavailable("scan menu item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate menu items", err)
	}

	return items, nil
}

// PutMenuItem inserts or replaces a menu item keyed by its ID.
func (s *SQLiteStore) PutMenuItem(ctx context.Context, item models.MenuItem) error {
	return s.execContext(ctx, "put menu item",
		"INSERT OR REPLACE INTO menu (id, name, price, image) VALUES (?, ?, ?, ?)",
		item.ID, item.Name, item.Price, item.Image,
	)
}

// DeleteMenuItem removes a menu item by id. A missing id is a no-op.
func (s *SQLiteStore) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.execContext(ctx, "delete menu item",
		"DELETE FROM menu WHERE id = ?", id,
	)
}
