// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/database/schema"
	"github.com/taibuivan/directorscut/internal/platform/dberr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
)

// # Shared Account Query

// UserSelect is the SELECT ... FROM clause of every account read: the
// account joined with its role, soft-deleted rows excluded by the callers'
// WHERE clause. Column order matches [ScanUser].
var UserSelect = fmt.Sprintf(`
	SELECT a.%s, a.%s, a.%s, a.%s, a.%s, COALESCE(a.%s, ''), COALESCE(a.%s, ''),
	       a.%s, a.%s, a.%s, a.%s, COALESCE(r.%s, '%s')
	FROM %s a
	LEFT JOIN %s r ON r.%s = a.%s`,
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
	schema.UserAccount.FirstName, schema.UserAccount.LastName,
	schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
	schema.UserAccount.IsVerified, schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	schema.UserRole.Role, sec.RoleUser,
	schema.UserAccount.Table,
	schema.UserRole.Table, schema.UserRole.UserID, schema.UserAccount.ID,
)

// ScanUser reads one row selected with [UserSelect].
func ScanUser(row pgx.Row) (*User, error) {
	var role string
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.AvatarURL,
		&user.IsVerified,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&role,
	)
	if err != nil {
		return nil, err
	}
	user.Role = sec.ParseRole(role)
	return user, nil
}

// # User Repository

// PostgresUserRepository implements [UserRepository] and [RoleRepository].
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create inserts the account and its role row in one transaction.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict for a taken email, wrapped storage errors otherwise
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	insertAccount := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.FirstName, schema.UserAccount.LastName,
		schema.UserAccount.IsVerified, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	insertRole := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.UserRole.Table, schema.UserRole.UserID, schema.UserRole.Role)

	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, insertAccount,
			user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
			user.IsVerified, user.CreatedAt, user.UpdatedAt,
		); err != nil {
			return err
		}
		_, err := tx.Exec(context, insertRole, user.ID, string(user.Role))
		return err
	})

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("Email is already registered").WithCause(err)
	}
	return dberr.Wrap(err, "create_user")
}

// FindByID retrieves an account by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := UserSelect + fmt.Sprintf(` WHERE a.%s = $1 AND a.%s IS NULL`,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	return repository.findOne(context, query, id, "find_user_by_id")
}

// FindByEmail retrieves an account by email, ignoring case.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := UserSelect + fmt.Sprintf(` WHERE lower(a.%s) = lower($1) AND a.%s IS NULL`,
		schema.UserAccount.Email, schema.UserAccount.DeletedAt)

	return repository.findOne(context, query, email, "find_user_by_email")
}

func (repository *PostgresUserRepository) findOne(context context.Context, query string, arg any, action string) (*User, error) {
	user, err := ScanUser(repository.pool.QueryRow(context, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

// UpdatePassword replaces the password hash of an active account.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// MarkVerified flags the account email as confirmed.
func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.IsVerified, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "mark_verified")
}

// TouchLogin records the time of a successful login.
func (repository *PostgresUserRepository) TouchLogin(context context.Context, userID string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	_, err := repository.pool.Exec(context, query, userID, at)
	return dberr.Wrap(err, "touch_login")
}

// FindRole reads users.role. A user without a role row is a plain user.
func (repository *PostgresUserRepository) FindRole(context context.Context, userID string) (sec.UserRole, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserRole.Role, schema.UserRole.Table, schema.UserRole.UserID)

	var role string
	err := repository.pool.QueryRow(context, query, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return sec.RoleUser, nil
	}
	if err != nil {
		return sec.RoleUser, dberr.Wrap(err, "find_role")
	}
	return sec.ParseRole(role), nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create records a new refresh session.
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserSession.Table,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.UserAgent, schema.UserSession.IPAddress, schema.UserSession.ExpiresAt,
		schema.UserSession.IsRevoked, schema.UserSession.CreatedAt,
	)

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)
	return dberr.Wrap(err, "create_session")
}

/*
FindByTokenHash retrieves an active session by its token hash.

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound for revoked, expired or unknown sessions
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()`,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.UserAgent, schema.UserSession.IPAddress, schema.UserSession.ExpiresAt,
		schema.UserSession.IsRevoked, schema.UserSession.CreatedAt,
		schema.UserSession.Table,
		schema.UserSession.TokenHash, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Session")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_session")
	}
	return session, nil
}

// Revoke marks a specific session as revoked.
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt, schema.UserSession.ID)

	_, err := repository.pool.Exec(context, query, sessionID)
	return dberr.Wrap(err, "revoke_session")
}

// RevokeAll marks all active sessions for a user as revoked.
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.IsRevoked)

	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "revoke_all_sessions")
}

// RevokeOthers marks all active sessions for a user as revoked, except for one.
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s <> $2 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.ID, schema.UserSession.IsRevoked)

	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	return dberr.Wrap(err, "revoke_other_sessions")
}

// DeleteExpired removes sessions past their expiry.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s <= NOW()`,
		schema.UserSession.Table, schema.UserSession.ExpiresAt)

	_, err := repository.pool.Exec(context, query)
	return dberr.Wrap(err, "delete_expired_sessions")
}
