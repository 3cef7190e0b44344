// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the profile of the logged-in user, their device
sessions, and the master's user management.

# Architecture

  - Entities: the auth.User account, SessionInfo (DTO).
  - Domain: role changes and user deletion are decided by the admin policy;
    master accounts can be neither modified nor deleted.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/auth"
	"github.com/taibuivan/directorscut/pkg/pagination"
)

// # Profile Limits

const (
	MaxNameLength = auth.MaxNameLength
	MaxBioLength  = 500
)

// Field names of the profile form.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldAvatarURL = "avatar_url"
	FieldRole      = "role"
)

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"`
	TokenHash string    `json:"-"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves an active account with its role.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	// Update writes the profile fields (names, bio, avatar).
	Update(context context.Context, user *auth.User) error

	// SoftDelete flags an account as deleted.
	SoftDelete(context context.Context, id string) error

	/*
		List returns one page of active accounts, oldest first, and the total.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
	*/
	List(context context.Context, params pagination.Params) ([]auth.User, int, error)

	// SetRole upserts the role row of userID, recording who assigned it.
	SetRole(context context.Context, userID string, role sec.UserRole, assignedBy string) error
}

// SessionRepository defines the visibility and revocation contract for user sessions.
type SessionRepository interface {
	FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error)

	/*
		Revoke marks a session of userID as revoked.

		Returns:
		  - error: apperr.NotFound when the session does not belong to userID
	*/
	Revoke(context context.Context, userID, sessionID string) error

	RevokeAll(context context.Context, userID string) error
}
