// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package auth implements cookie-based session authentication for the admin CMS.

# Session Model

Sessions are stateless JWTs carried in an HttpOnly cookie, with a small
Redis-backed revocation set for logout. A token is trusted until it either
expires or its ID appears in the revocation set.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/constants"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/internal/users"
)

// # Dependencies

// UserFinder is the slice of the users repository that login needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByID(ctx context.Context, id string) (*users.User, error)
}

// TokenProvider issues signed session tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// SessionStore tracks revoked token IDs until their natural expiry.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// # Service Layer

// Service orchestrates login, logout, and session introspection.
type Service struct {
	userFinder UserFinder
	tokens     TokenProvider
	sessions   SessionStore
	logger     *slog.Logger
}

// NewService constructs an auth [Service].
func NewService(userFinder UserFinder, tokens TokenProvider, sessions SessionStore, logger *slog.Logger) *Service {
	return &Service{
		userFinder: userFinder,
		tokens:     tokens,
		sessions:   sessions,
		logger:     logger,
	}
}

/*
Login verifies credentials and issues a session token.

Description: The error for a wrong email and a wrong password is identical so
that the endpoint does not leak which accounts exist. Disabled accounts are
rejected after the password check with a distinct status.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - *users.User: The authenticated account
  - string: Signed session token, valid for [constants.SessionTTL]
  - error: Unauthorized, Forbidden, or infrastructure errors
*/
func (service *Service) Login(ctx context.Context, email, password string) (*users.User, string, error) {
	user, err := service.userFinder.FindByEmail(ctx, email)
	if err != nil {
		// Burn a comparable amount of time so missing accounts are not
		// distinguishable by response latency.
		sec.CheckPasswordHash(password, dummyHash)
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("user_id", user.ID))
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	if !user.IsActive {
		return nil, "", apperr.Forbidden("User account is disabled")
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Email, user.Role, constants.SessionTTL)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	service.logger.Info("login_succeeded",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)

	return user, token, nil
}

/*
Logout revokes the session identified by the given claims.

Description: The token ID is added to the revocation set with a TTL matching
the token's remaining lifetime, so the set never outgrows the active session
window.

Parameters:
  - ctx: context.Context
  - claims: *sec.AuthClaims

Returns:
  - error: Revocation store errors
*/
func (service *Service) Logout(ctx context.Context, claims *sec.AuthClaims) error {
	ttl := constants.SessionTTL
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := service.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}

	service.logger.Info("logout", slog.String("user_id", claims.UserID))
	return nil
}

// Me resolves the account behind a verified session.
func (service *Service) Me(ctx context.Context, claims *sec.AuthClaims) (*users.User, error) {
	user, err := service.userFinder.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Session user no longer exists")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("User account is disabled")
	}

	return user, nil
}

// dummyHash is a bcrypt hash of a random string, used to equalize timing
// when the email lookup misses.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
