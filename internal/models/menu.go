package models

// MenuItem represents a dish on the menu.
type MenuItem struct {
	// ID is the unique identifier, supplied by the caller.
	// The front end derives it from the creation time (Unix milliseconds).
	ID int64

	// Name is the display name of the dish.
	Name string

	// Price is the price in the restaurant's currency. The store does not
	// reject negative values; the front end validates before calling.
	Price float64

	// Image is a URL to a picture of the dish.
	Image string
}
