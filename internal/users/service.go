// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package users

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/internal/platform/validate"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"

	// Minimum password length for admin accounts.
	minPasswordLength = 8
)

// # Service Layer

// Service orchestrates admin account management.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a users [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all accounts, newest first.
func (service *Service) List(ctx context.Context) ([]*User, int, error) {
	return service.repo.List(ctx)
}

// Get retrieves one account by ID.
func (service *Service) Get(ctx context.Context, id string) (*User, error) {
	return service.repo.FindByID(ctx, id)
}

// CreateInput holds the data to provision a new account.
type CreateInput struct {
	Email    string
	Password string
	Name     *string
	Role     string
}

/*
Create provisions a new admin account.

Description: Emails are unique across accounts; passwords are bcrypt-hashed
before storage and never leave this layer in plain text.

Parameters:
  - ctx: context.Context
  - input: CreateInput

Returns:
  - *User: The created account
  - error: Validation, duplicate-email conflict, or persistence errors
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleAdmin)
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email)
	v.Email(FieldEmail, input.Email)
	v.MinLen(FieldPassword, input.Password, minPasswordLength)
	v.OneOf(FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleSuperadmin))
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		IsActive:     true,
		Role:         input.Role,
	}

	if err := service.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)

	return user, nil
}

// Patch carries the editable account fields for a partial update.
// Nil means "leave unchanged".
type Patch struct {
	Email    *string
	Password *string
	Name     *string
	Role     *string
	IsActive *bool
}

/*
Update applies a partial update to an account.

Description: Superadmins cannot change their own role or deactivate their own
account, and the system refuses any change that would leave it without an
active superadmin.

Parameters:
  - ctx: context.Context
  - id: string (target account)
  - actorID: string (the superadmin performing the change)
  - patch: Patch

Returns:
  - *User: The updated account
  - error: Validation, self-edit guard, or persistence errors
*/
func (service *Service) Update(ctx context.Context, id, actorID string, patch Patch) (*User, error) {
	user, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// ── Self-edit guards ──
	if id == actorID {
		if patch.Role != nil && *patch.Role != user.Role {
			return nil, apperr.ValidationError("Cannot change your own role")
		}
		if patch.IsActive != nil && !*patch.IsActive {
			return nil, apperr.ValidationError("Cannot deactivate your own account")
		}
	}

	// ── Last-superadmin guard ──
	demoting := patch.Role != nil && user.Role == string(sec.RoleSuperadmin) && *patch.Role != string(sec.RoleSuperadmin)
	deactivating := patch.IsActive != nil && !*patch.IsActive && user.IsActive && user.Role == string(sec.RoleSuperadmin)
	if demoting || deactivating {
		count, err := service.repo.CountActiveSuperadmins(ctx)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, apperr.ValidationError("Cannot remove the last superadmin")
		}
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if _, err := service.repo.FindByEmail(ctx, *patch.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
		user.Email = *patch.Email
	}

	if patch.Password != nil && *patch.Password != "" {
		v := &validate.Validator{}
		v.MinLen(FieldPassword, *patch.Password, minPasswordLength)
		if err := v.Err(); err != nil {
			return nil, err
		}

		hash, err := sec.HashPassword(*patch.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.PasswordHash = hash
	}

	if patch.Name != nil {
		user.Name = patch.Name
	}
	if patch.Role != nil {
		v := &validate.Validator{}
		v.OneOf(FieldRole, *patch.Role, string(sec.RoleAdmin), string(sec.RoleSuperadmin))
		if err := v.Err(); err != nil {
			return nil, err
		}
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := service.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("user_id", user.ID))

	return user, nil
}

/*
Delete removes an account.

Description: Self-deletion is refused, as is deleting the last active
superadmin.

Parameters:
  - ctx: context.Context
  - id: string (target account)
  - actorID: string (the superadmin performing the deletion)

Returns:
  - error: NotFound, guard violations, or persistence errors
*/
func (service *Service) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return apperr.ValidationError("Cannot delete your own account")
	}

	user, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == string(sec.RoleSuperadmin) && user.IsActive {
		count, err := service.repo.CountActiveSuperadmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperr.ValidationError("Cannot remove the last superadmin")
		}
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("user_id", id))
	return nil
}
