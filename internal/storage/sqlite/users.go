package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/storage"
)

// CreateUser inserts a new user. Unlike the other collections this is not
// an upsert: an existing username fails with storage.ErrDuplicateKey and
// keeps its current password and role. INSERT OR IGNORE plus the affected
// row count detects the collision without driver-specific error codes.
func (s *SQLiteStore) CreateUser(ctx context.Context, user models.User) error {
	if err := s.init(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (username, password, role) VALUES (?, ?, ?)",
		user.Username, user.Password, string(user.Role),
	)
	if err != nil {
		return unavailable("create user", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable("create user", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %q", storage.ErrDuplicateKey, user.Username)
	}

	return nil
}

// GetUser retrieves a user by username (case-sensitive exact match).
// Returns nil if no such user exists.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	user := &models.User{}
	var role string
	err := s.db.QueryRowContext(ctx,
		"SELECT username, password, role FROM users WHERE username = ?", username,
	).Scan(&user.Username, &user.Password, &role)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, unavailable("get user", err)
	}
	user.Role = models.Role(role)

	return user, nil
}

// PutSession records user as the currently-logged-in user. The session
// table holds a single row, so this replaces any previous session even if
// it belonged to a different user.
func (s *SQLiteStore) PutSession(ctx context.Context, user models.User) error {
	return s.execContext(ctx, "put session",
		"INSERT OR REPLACE INTO session (slot, username, password, role) VALUES (1, ?, ?, ?)",
		user.Username, user.Password, string(user.Role),
	)
}

// GetSession returns the currently-logged-in user, or nil if nobody is.
func (s *SQLiteStore) GetSession(ctx context.Context) (*models.User, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	user := &models.User{}
	var role string
	err := s.db.QueryRowContext(ctx,
		"SELECT username, password, role FROM session WHERE slot = 1",
	).Scan(&user.Username, &user.Password, &role)
	if err == sql.ErrNoRows {
		return nil, nil // Nobody logged in
	}
	if err != nil {
		return nil, unavailable("get session", err)
	}
	user.Role = models.Role(role)

	return user, nil
}

// ClearSession logs out whoever is logged in.
func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	return s.execContext(ctx, "clear session", "DELETE FROM session")
}
