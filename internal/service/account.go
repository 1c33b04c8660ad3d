// Package service implements the operations the presentation layer calls:
// account management, menu management, and the order lifecycle. Services
// hold no state of their own; every call goes through the injected store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/models"
)

// SessionStorage defines the session operations the account service needs.
type SessionStorage interface {
	PutSession(ctx context.Context, user models.User) error
	GetSession(ctx context.Context) (*models.User, error)
	ClearSession(ctx context.Context) error
}

// AccountService handles registration, login, logout, and the current-user
// lookup. The session is a single persisted slot: logging in writes the
// user into it (replacing any previous session) and logging out clears it.
type AccountService struct {
	authenticator auth.Authenticator
	sessions      SessionStorage
	logger        *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(authenticator auth.Authenticator, sessions SessionStorage, logger *slog.Logger) *AccountService {
	return &AccountService{
		authenticator: authenticator,
		sessions:      sessions,
		logger:        logger,
	}
}

// Register creates a new user account. Returns auth.ErrUsernameTaken if the
// username is already registered; the existing account is left untouched.
func (s *AccountService) Register(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	s.logger.Info("Register request", "username", username, "role", role)

	user, err := s.authenticator.Register(ctx, username, password, role)
	if err != nil {
		metrics.Operations.WithLabelValues("account", "register", outcome(err)).Inc()
		s.logger.Warn("Registration failed", "username", username, "error", err)
		return nil, err
	}

	metrics.Operations.WithLabelValues("account", "register", metrics.OutcomeOK).Inc()
	s.logger.Info("User registered", "username", user.Username, "role", user.Role)
	return user, nil
}

// Login authenticates a user and records them as the logged-in user.
// Returns auth.ErrInvalidCredentials when the username is unknown or the
// password does not match.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.User, error) {
	s.logger.Info("Login request", "username", username)

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		metrics.Operations.WithLabelValues("account", "login", outcome(err)).Inc()
		s.logger.Warn("Login failed", "username", username, "error", err)
		return nil, err
	}

	if err := s.sessions.PutSession(ctx, *user); err != nil {
		metrics.Operations.WithLabelValues("account", "login", metrics.OutcomeError).Inc()
		s.logger.Error("Failed to record session", "username", username, "error", err)
		return nil, err
	}

	metrics.Operations.WithLabelValues("account", "login", metrics.OutcomeOK).Inc()
	s.logger.Info("User logged in", "username", user.Username, "role", user.Role)
	return user, nil
}

// Logout clears the session. A no-op when nobody is logged in.
func (s *AccountService) Logout(ctx context.Context) error {
	if err := s.sessions.ClearSession(ctx); err != nil {
		metrics.Operations.WithLabelValues("account", "logout", metrics.OutcomeError).Inc()
		s.logger.Error("Logout failed", "error", err)
		return err
	}

	metrics.Operations.WithLabelValues("account", "logout", metrics.OutcomeOK).Inc()
	s.logger.Info("User logged out")
	return nil
}

// CurrentUser returns the logged-in user, or nil if nobody is logged in.
func (s *AccountService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.sessions.GetSession(ctx)
	if err != nil {
		metrics.Operations.WithLabelValues("account", "current_user", metrics.OutcomeError).Inc()
		return nil, err
	}

	metrics.Operations.WithLabelValues("account", "current_user", metrics.OutcomeOK).Inc()
	return user, nil
}

// outcome classifies an error for the metrics label: domain refusals count
// as rejected, everything else as a storage/internal error.
func outcome(err error) string {
	switch {
	case errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrUnknownStatus):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
