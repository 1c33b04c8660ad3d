package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidRole        = errors.New("role must be client or admin")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication.
//
// Passwords are stored and compared in plaintext: the store is local to a
// single user's machine and hardening it is explicitly out of scope.
// No strength or format validation is applied either.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// Register creates a new user account.
// Usernames are matched case-sensitively, so "Alice" and "alice" are
// distinct accounts.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	existing, err := a.storage.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user := models.User{
		Username: username,
		Password: password,
		Role:     role,
	}

	if err := a.storage.CreateUser(ctx, user); err != nil {
		// Covers an insert racing past the lookup above.
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.storage.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
