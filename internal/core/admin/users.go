// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/platform/validate"
)

// FieldRole names the role field in validation errors.
const FieldRole = "role"

// PrepareRoleChange authorizes assigning role to a user currently holding
// current. Only a master may do it, master accounts are immutable, and
// nobody can be promoted to master through the API.
func PrepareRoleChange(actor Actor, current, role sec.UserRole) error {
	if err := Can(ActionManageUsers, actor, nil).Err(); err != nil {
		return err
	}
	if current.IsMaster() {
		return apperr.Forbidden("Master accounts cannot be modified")
	}
	v := &validate.Validator{}
	v.OneOf(FieldRole, string(role), string(sec.RoleAdmin), string(sec.RoleUser))
	return v.FirstErr()
}

// PrepareUserDelete authorizes removing a user holding role.
func PrepareUserDelete(actor Actor, role sec.UserRole) error {
	if err := Can(ActionManageUsers, actor, nil).Err(); err != nil {
		return err
	}
	if role.IsMaster() {
		return apperr.Forbidden("Master accounts cannot be deleted")
	}
	return nil
}
