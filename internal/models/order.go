package models

// Status is the lifecycle stage of an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusServed  Status = "served"
)

// next maps each status to the only status it may advance to.
// StatusServed is terminal and has no entry.
var next = map[Status]Status{
	StatusPending: StatusReady,
	StatusReady:   StatusServed,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReady, StatusServed:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to target is a legal
// forward step. There are no backward transitions and no skips.
func (s Status) CanTransitionTo(target Status) bool {
	return next[s] == target
}

// OrderItem is one line of an order: a menu item id and a quantity.
// The id is not validated against the menu collection; it may reference a
// dish that has since been removed.
type OrderItem struct {
	MenuItemID int64
	Quantity   int
}

// Order represents a customer order.
type Order struct {
	// ID is the unique identifier, supplied by the caller.
	ID int64

	// Username identifies the customer who placed the order. It is not
	// validated against the users collection.
	Username string

	// Items are the order lines, in the sequence the customer added them.
	Items []OrderItem

	// Status is the current lifecycle stage.
	Status Status

	// CreatedAt is the Unix timestamp when the order was placed.
	// Filled in by the store when zero.
	CreatedAt int64
}
