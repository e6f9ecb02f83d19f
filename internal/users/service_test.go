// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package users

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/sec"
)

// # Test Doubles

// fakeRepo is an in-memory [Repository].
type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (repo *fakeRepo) List(_ context.Context) ([]*User, int, error) {
	var all []*User
	for _, user := range repo.users {
		all = append(all, user)
	}
	return all, len(all), nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepo) Create(_ context.Context, user *User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, user *User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

func (repo *fakeRepo) CountActiveSuperadmins(_ context.Context) (int, error) {
	count := 0
	for _, user := range repo.users {
		if user.Role == string(sec.RoleSuperadmin) && user.IsActive {
			count++
		}
	}
	return count, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedSuperadmin(repo *fakeRepo, id, email string) {
	repo.users[id] = &User{
		ID:       id,
		Email:    email,
		IsActive: true,
		Role:     string(sec.RoleSuperadmin),
	}
}

func strPtr(value string) *string { return &value }
func boolPtr(value bool) *bool    { return &value }

// # Create Tests

func TestCreate_DefaultsToAdminRole(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	user, err := service.Create(context.Background(), CreateInput{
		Email:    "curator@meihe.tw",
		Password: "orchid-garden",
	})
	require.NoError(t, err)

	assert.Equal(t, string(sec.RoleAdmin), user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)

	// The stored hash must verify against the original password and never
	// equal it.
	assert.NotEqual(t, "orchid-garden", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("orchid-garden", user.PasswordHash))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	_, err := service.Create(context.Background(), CreateInput{
		Email:    "root@meihe.tw",
		Password: "orchid-garden",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestCreate_RejectsShortPassword(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Create(context.Background(), CreateInput{
		Email:    "curator@meihe.tw",
		Password: "short",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.Create(context.Background(), CreateInput{
		Email:    "curator@meihe.tw",
		Password: "orchid-garden",
		Role:     "owner",
	})
	require.Error(t, err)
}

// # Update Guard Tests

func TestUpdate_SelfRoleChangeRejected(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	_, err := service.Update(context.Background(), "root-1", "root-1", Patch{
		Role: strPtr(string(sec.RoleAdmin)),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "your own role")
}

func TestUpdate_SelfDeactivateRejected(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	_, err := service.Update(context.Background(), "root-1", "root-1", Patch{
		IsActive: boolPtr(false),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "your own account")
}

func TestUpdate_LastSuperadminCannotBeDemoted(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	_, err := service.Update(context.Background(), "root-1", "other-admin", Patch{
		Role: strPtr(string(sec.RoleAdmin)),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last superadmin")
}

func TestUpdate_DemotionAllowedWhenAnotherSuperadminRemains(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	seedSuperadmin(repo, "root-2", "backup@meihe.tw")
	service := newTestService(repo)

	updated, err := service.Update(context.Background(), "root-1", "root-2", Patch{
		Role: strPtr(string(sec.RoleAdmin)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(sec.RoleAdmin), updated.Role)
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	updated, err := service.Update(context.Background(), "root-1", "someone-else", Patch{
		Password: strPtr("plum-blossom-gate"),
	})
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("plum-blossom-gate", updated.PasswordHash))
}

func TestUpdate_EmailConflict(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	seedSuperadmin(repo, "root-2", "backup@meihe.tw")
	service := newTestService(repo)

	_, err := service.Update(context.Background(), "root-1", "root-2", Patch{
		Email: strPtr("backup@meihe.tw"),
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

// # Delete Guard Tests

func TestDelete_SelfRejected(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	err := service.Delete(context.Background(), "root-1", "root-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "your own account")
}

func TestDelete_LastSuperadminRejected(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	service := newTestService(repo)

	err := service.Delete(context.Background(), "root-1", "other-admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last superadmin")
}

func TestDelete_AllowedWithBackupSuperadmin(t *testing.T) {
	repo := newFakeRepo()
	seedSuperadmin(repo, "root-1", "root@meihe.tw")
	seedSuperadmin(repo, "root-2", "backup@meihe.tw")
	service := newTestService(repo)

	require.NoError(t, service.Delete(context.Background(), "root-1", "root-2"))

	_, err := repo.FindByID(context.Background(), "root-1")
	require.Error(t, err)
}
