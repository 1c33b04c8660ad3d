package auth

import (
	"context"

	"github.com/tavolo/tavolo/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods without
// changing the account service.
type Authenticator interface {
	// Register creates a new account with the given credentials and role.
	// Returns the created user, or ErrUsernameTaken if the username exists.
	Register(ctx context.Context, username, password string, role models.Role) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if valid.
	// Returns ErrInvalidCredentials when the user is absent or the password
	// does not match.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}
