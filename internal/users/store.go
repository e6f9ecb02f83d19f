// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package users

import "context"

// Repository is the persistence contract for admin accounts.
type Repository interface {
	List(ctx context.Context) ([]*User, int, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error

	// CountActiveSuperadmins backs the last-superadmin guards.
	CountActiveSuperadmins(ctx context.Context) (int, error)
}
