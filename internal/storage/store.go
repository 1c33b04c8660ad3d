// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tavolo/tavolo/internal/models"
)

// ErrUnavailable indicates the underlying store could not be opened, read,
// or written. It is fatal to the attempted operation; callers surface it
// rather than retry.
var ErrUnavailable = errors.New("storage unavailable")

// ErrDuplicateKey indicates an insert hit an existing primary key on a
// collection whose writes are not upserts (users).
var ErrDuplicateKey = errors.New("duplicate key")

// Store defines the interface for the four persistent collections
// (menu, orders, users, session). This abstraction allows swapping storage
// backends without changing the service layer.
//
// Writes are insert-or-replace keyed by the record's primary key unless
// noted otherwise. Reads of a missing key return nil, not an error.
type Store interface {
	// ListMenuItems returns all menu items, in no particular order.
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)

	// PutMenuItem inserts or replaces a menu item keyed by its ID.
	PutMenuItem(ctx context.Context, item models.MenuItem) error

	// DeleteMenuItem removes a menu item by id. Deleting a missing id is
	// a no-op, not an error.
	DeleteMenuItem(ctx context.Context, id int64) error

	// ListOrders returns all orders, in no particular order.
	ListOrders(ctx context.Context) ([]models.Order, error)

	// GetOrder retrieves an order by id, or nil if absent.
	GetOrder(ctx context.Context, id int64) (*models.Order, error)

	// PutOrder inserts or replaces an order keyed by its ID, including its
	// item lines in sequence. A zero CreatedAt is filled in by the store.
	PutOrder(ctx context.Context, order *models.Order) error

	// CreateUser inserts a new user. Fails with ErrDuplicateKey if the
	// username already exists; the existing account is left untouched.
	CreateUser(ctx context.Context, user models.User) error

	// GetUser retrieves a user by username, or nil if absent.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// PutSession records user as the currently-logged-in user, replacing
	// any previous session regardless of whose it was.
	PutSession(ctx context.Context, user models.User) error

	// GetSession returns the currently-logged-in user, or nil if nobody
	// is logged in.
	GetSession(ctx context.Context) (*models.User, error)

	// ClearSession logs out whoever is logged in. A no-op when nobody is.
	ClearSession(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
