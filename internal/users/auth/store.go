// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/directorscut/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID, role included.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail looks an account up by its case-insensitive email.
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account together with its role row.

		Parameters:
		  - context: context.Context
		  - user: *User (ID, hash and role already set)

		Returns:
		  - error: apperr.Conflict when the email is taken
	*/
	Create(context context.Context, user *User) error

	UpdatePassword(context context.Context, userID, newHash string) error
	MarkVerified(context context.Context, userID string) error
	TouchLogin(context context.Context, userID string, at time.Time) error
}

// RoleRepository reads the role table.
type RoleRepository interface {
	// FindRole returns the stored role of userID.
	FindRole(context context.Context, userID string) (sec.UserRole, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the given token hash.
		Revoked and expired sessions are not found.
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	Revoke(context context.Context, sessionID string) error
	RevokeAll(context context.Context, userID string) error

	// RevokeOthers revokes every session of userID except currentSessionID.
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	DeleteExpired(context context.Context) error
}

// # Volatile Data Access

// TokenRepository stores single-use tokens with a lifetime. Keys are token
// hashes, values are user IDs.
type TokenRepository interface {
	Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error

	// Get reports an unknown or expired token as a VALIDATION_ERROR.
	Get(context context.Context, tokenHash string) (string, error)

	Delete(context context.Context, tokenHash string) error
}
