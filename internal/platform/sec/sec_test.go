// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/directorscut/internal/platform/sec"
)

/*
TestUserRole_Hierarchy checks the master > admin > user ordering.
*/
func TestUserRole_Hierarchy(t *testing.T) {
	assert.True(t, sec.RoleMaster.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))

	assert.True(t, sec.RoleMaster.IsPrivileged())
	assert.True(t, sec.RoleAdmin.IsPrivileged())
	assert.False(t, sec.RoleUser.IsPrivileged())

	assert.True(t, sec.RoleMaster.IsMaster())
	assert.False(t, sec.RoleAdmin.IsMaster())
}

/*
TestParseRole verifies that unknown values fall back to the lowest role.
*/
func TestParseRole(t *testing.T) {
	assert.Equal(t, sec.RoleMaster, sec.ParseRole("master"))
	assert.Equal(t, sec.RoleAdmin, sec.ParseRole("admin"))
	assert.Equal(t, sec.RoleUser, sec.ParseRole("user"))
	assert.Equal(t, sec.RoleUser, sec.ParseRole(""))
	assert.Equal(t, sec.RoleUser, sec.ParseRole("superuser"))
}

func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken()
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, sec.HashToken(first), 64)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}
