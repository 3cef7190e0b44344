// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Owns the catalog: genres, user roles, everything an admin can do
	RoleMaster UserRole = "master"

	// Manages every movie, including the featured flag
	RoleAdmin UserRole = "admin"

	// Default role; manages only the movies it created
	RoleUser UserRole = "user"
)

// ParseRole maps a stored role name to a [UserRole].
// Unknown or empty values resolve to [RoleUser].
func ParseRole(raw string) UserRole {
	switch UserRole(raw) {
	case RoleMaster:
		return RoleMaster
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsPrivileged reports whether the role can manage every movie.
func (r UserRole) IsPrivileged() bool {
	return r.AtLeast(RoleAdmin)
}

// IsMaster reports whether the role can manage genres and users.
func (r UserRole) IsMaster() bool {
	return r == RoleMaster
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleMaster:
		return 30
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
