package models

// Role is the access class of a user account.
type Role string

const (
	// RoleClient can browse the menu and place orders.
	RoleClient Role = "client"

	// RoleAdmin can manage the menu and drive orders through the kitchen.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// User represents a registered account.
//
// Passwords are stored and compared in plaintext: the store lives on a
// single user's machine and is not meant to hold real credentials.
type User struct {
	// Username is the unique identifier (case-sensitive).
	Username string

	// Password is the plaintext password.
	Password string

	// Role is either RoleClient or RoleAdmin.
	Role Role
}
