// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	Name      string
	Role      string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// User is the schema definition for users
var User = UserTable{
	Table:     "users",
	ID:        "id",
	Email:     "email",
	Password:  "password_hash",
	Name:      "name",
	Role:      "role",
	IsActive:  "is_active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Name, t.Role, t.IsActive,
		t.CreatedAt, t.UpdatedAt,
	}
}
