// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package sec

// # Admin Roles

// UserRole represents the authorization level granted to an admin account.
type UserRole string

const (
	// Full system access including admin account management
	RoleSuperadmin UserRole = "superadmin"

	// Can manage all site content (sites, news, timeline, media)
	RoleAdmin UserRole = "admin"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleSuperadmin:
		return 20
	case RoleAdmin:
		return 10
	default:
		return 0
	}
}
