// Authentication business logic.
//
//	AuthHandler (HTTP) → AuthService → PasswordService (bcrypt)
//	                                 ↘ TokenService (JWT)
//
// The article store has a single author account. Its password is never stored
// in the database; the server is configured with a bcrypt hash of it
// (ADMIN_PASSWORD_HASH). A successful login yields a short-lived JWT that the
// write routes (create, update, delete) require.

package service

import (
	"fmt"
	"log/slog"

	"github.com/sakif/articles/internal/apperror"
	"github.com/sakif/articles/internal/auth"
)

// AdminSubject is the JWT subject issued to the author account.
const AdminSubject = "admin"

// AuthService handles the authentication business logic.
type AuthService struct {
	tokens       *auth.TokenService
	passwords    *auth.PasswordService
	passwordHash string
	logger       *slog.Logger
}

// NewAuthService creates an AuthService. passwordHash may be empty, in which
// case every login is rejected (tokens can still be validated).
func NewAuthService(
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	passwordHash string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		tokens:       tokens,
		passwords:    passwords,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// Login checks the password against the configured hash and issues a token.
//
// WHAT THIS METHOD DOES NOT DO:
//   - It does NOT set cookies (the handler owns HTTP concerns)
//   - It does NOT read HTTP requests
func (s *AuthService) Login(password string) (string, error) {
	if password == "" {
		return "", apperror.ValidationFailed("password", "password is required")
	}
	if s.passwordHash == "" {
		s.logger.Warn("login attempted but ADMIN_PASSWORD_HASH is not set")
		return "", apperror.Unauthorized("invalid credentials")
	}

	if err := s.passwords.Verify(s.passwordHash, password); err != nil {
		s.logger.Info("login rejected", slog.String("reason", err.Error()))
		return "", apperror.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Generate(AdminSubject)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token: %w", err)
	}

	s.logger.Info("author logged in")
	return token, nil
}

// Validate checks a token and returns its subject. Only tokens issued to
// AdminSubject are accepted. It satisfies auth.Validator, so the server
// hands the service itself to auth.RequireAuth.
func (s *AuthService) Validate(tokenStr string) (string, error) {
	subject, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	if subject != AdminSubject {
		return "", fmt.Errorf("service/auth: unexpected subject %q", subject)
	}
	return subject, nil
}
