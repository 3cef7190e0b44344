// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserRoleTable represents the 'users.role' table: one row per account.
type UserRoleTable struct {
	Table     string
	UserID    string
	Role      string
	CreatedBy string
	CreatedAt string
	UpdatedAt string
}

// UserRole is the schema definition for users.role
var UserRole = UserRoleTable{
	Table:     "users.role",
	UserID:    "userid",
	Role:      "role",
	CreatedBy: "createdby",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t UserRoleTable) Columns() []string {
	return []string{t.UserID, t.Role, t.CreatedBy, t.CreatedAt, t.UpdatedAt}
}
