// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/internal/users"
)

// # Test Doubles

type fakeUserFinder struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeUserFinder(accounts ...*users.User) *fakeUserFinder {
	finder := &fakeUserFinder{
		byEmail: map[string]*users.User{},
		byID:    map[string]*users.User{},
	}
	for _, account := range accounts {
		finder.byEmail[account.Email] = account
		finder.byID[account.ID] = account
	}
	return finder
}

func (finder *fakeUserFinder) FindByEmail(_ context.Context, email string) (*users.User, error) {
	user, ok := finder.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (finder *fakeUserFinder) FindByID(_ context.Context, id string) (*users.User, error) {
	user, ok := finder.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

type fakeTokenProvider struct {
	issued int
}

func (provider *fakeTokenProvider) GenerateAccessToken(userID, email, role string, _ time.Duration) (string, error) {
	provider.issued++
	return "token-for-" + userID, nil
}

type fakeSessionStore struct {
	revoked map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{revoked: map[string]time.Duration{}}
}

func (store *fakeSessionStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	store.revoked[tokenID] = ttl
	return nil
}

func (store *fakeSessionStore) IsRevoked(_ context.Context, tokenID string) bool {
	_, revoked := store.revoked[tokenID]
	return revoked
}

func newTestService(finder UserFinder, sessions SessionStore) (*Service, *fakeTokenProvider) {
	tokens := &fakeTokenProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(finder, tokens, sessions, logger), tokens
}

func activeAdmin(t *testing.T, id, email, password string) *users.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &users.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		Role:         string(sec.RoleAdmin),
	}
}

// # Login Tests

func TestLogin(t *testing.T) {
	account := activeAdmin(t, "admin-1", "curator@meihe.tw", "orchid-garden")
	service, tokens := newTestService(newFakeUserFinder(account), newFakeSessionStore())

	user, token, err := service.Login(context.Background(), "curator@meihe.tw", "orchid-garden")
	require.NoError(t, err)

	assert.Equal(t, "admin-1", user.ID)
	assert.Equal(t, "token-for-admin-1", token)
	assert.Equal(t, 1, tokens.issued)
}

func TestLogin_WrongPassword(t *testing.T) {
	account := activeAdmin(t, "admin-1", "curator@meihe.tw", "orchid-garden")
	service, tokens := newTestService(newFakeUserFinder(account), newFakeSessionStore())

	_, _, err := service.Login(context.Background(), "curator@meihe.tw", "wrong")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	assert.Equal(t, "Invalid email or password", appErr.Message)
	assert.Zero(t, tokens.issued)
}

func TestLogin_UnknownEmailGetsSameError(t *testing.T) {
	// Unknown accounts and wrong passwords must be indistinguishable.
	service, _ := newTestService(newFakeUserFinder(), newFakeSessionStore())

	_, _, err := service.Login(context.Background(), "nobody@meihe.tw", "whatever")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestLogin_DisabledAccount(t *testing.T) {
	account := activeAdmin(t, "admin-1", "curator@meihe.tw", "orchid-garden")
	account.IsActive = false
	service, _ := newTestService(newFakeUserFinder(account), newFakeSessionStore())

	_, _, err := service.Login(context.Background(), "curator@meihe.tw", "orchid-garden")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
}

// # Logout Tests

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	sessions := newFakeSessionStore()
	service, _ := newTestService(newFakeUserFinder(), sessions)

	claims := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
		UserID: "admin-1",
	}

	require.NoError(t, service.Logout(context.Background(), claims))

	ttl, revoked := sessions.revoked["jti-1"]
	require.True(t, revoked)
	assert.LessOrEqual(t, ttl, 2*time.Hour)
	assert.Greater(t, ttl, time.Hour)
}

// # Me Tests

func TestMe_DeletedAccount(t *testing.T) {
	service, _ := newTestService(newFakeUserFinder(), newFakeSessionStore())

	claims := &sec.AuthClaims{UserID: "ghost"}
	_, err := service.Me(context.Background(), claims)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}

func TestMe_DisabledAccount(t *testing.T) {
	account := activeAdmin(t, "admin-1", "curator@meihe.tw", "orchid-garden")
	account.IsActive = false
	service, _ := newTestService(newFakeUserFinder(account), newFakeSessionStore())

	_, err := service.Me(context.Background(), &sec.AuthClaims{UserID: "admin-1"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
}
