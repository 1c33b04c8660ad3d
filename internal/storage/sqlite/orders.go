package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tavolo/tavolo/internal/models"
)

// PutOrder inserts or replaces an order and its item lines.
// Replacing rewrites the lines so a shrunk order leaves no stragglers.
func (s *SQLiteStore) PutOrder(ctx context.Context, order *models.Order) error {
	if err := s.init(); err != nil {
		return err
	}

	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin order transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO orders (id, username, status, created_at) VALUES (?, ?, ?, ?)",
		order.ID, order.Username, string(order.Status), order.CreatedAt,
	)
	if err != nil {
		return unavailable("put order", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = ?", order.ID); err != nil {
		return unavailable("clear order items", err)
	}

	for i, line := range order.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, position, menu_item_id, quantity) VALUES (?, ?, ?, ?)",
			order.ID, i, line.MenuItemID, line.Quantity,
		)
		if err != nil {
			return unavailable("put order item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit order", err)
	}

	return nil
}

// GetOrder retrieves an order by id, including its item lines in the
// sequence they were placed. Returns nil if the order does not exist.
func (s *SQLiteStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	order := &models.Order{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, status, created_at FROM orders WHERE id = ?", id,
	).Scan(&order.ID, &order.Username, &status, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Order not found
	}
	if err != nil {
		return nil, unavailable("get order", err)
	}
	order.Status = models.Status(status)

	items, err := s.orderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// ListOrders returns every order with its item lines.
func (s *SQLiteStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, status, created_at FROM orders")
	if err != nil {
		return nil, unavailable("list orders", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var status string
		if err := rows.Scan(&order.ID, &order.Username, &status, &order.CreatedAt); err != nil {
			return nil, unavailable("scan order", err)
		}
		order.Status = models.Status(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate orders", err)
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// orderItems fetches the lines of one order ordered by position.
func (s *SQLiteStore) orderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT menu_item_id, quantity FROM order_items WHERE order_id = ? ORDER BY position",
		orderID,
	)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("get items for order %d", orderID), err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var line models.OrderItem
		if err := rows.Scan(&line.MenuItemID, &line.Quantity); err != nil {
			return nil, unavailable("scan order item", err)
		}
		items = append(items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate order items", err)
	}

	return items, nil
}
