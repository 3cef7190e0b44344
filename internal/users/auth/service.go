// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/directorscut/internal/notify/email"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/constants"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Mailer sends account emails.
type Mailer interface {
	Dispatch(ctx context.Context, request email.Request) error
}

// Links are the front-end addresses account emails send the user back to.
type Links struct {
	// SiteURL is where a confirmed user lands.
	SiteURL string
	// ResetRedirectURL is the page where a new password is chosen.
	ResetRedirectURL string
}

// Service implements user authentication use cases.
type Service struct {
	userRepository              UserRepository
	roleRepository              RoleRepository
	sessionRepository           SessionRepository
	resetTokenRepository        TokenRepository
	verificationTokenRepository TokenRepository
	tokenProvider               TokenProvider
	mailer                      Mailer
	links                       Links
	logger                      *slog.Logger
	now                         func() time.Time
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	roleRepo RoleRepository,
	sessionRepo SessionRepository,
	resetRepo TokenRepository,
	verifyRepo TokenRepository,
	tokenProv TokenProvider,
	mailer Mailer,
	links Links,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:              userRepo,
		roleRepository:              roleRepo,
		sessionRepository:           sessionRepo,
		resetTokenRepository:        resetRepo,
		verificationTokenRepository: verifyRepo,
		tokenProvider:               tokenProv,
		mailer:                      mailer,
		links:                       links,
		logger:                      logger,
		now:                         time.Now,
	}
}

// # Role Lookup

/*
ResolveRole returns the current role of userID.

Description: Any lookup failure is logged and resolves to the lowest role,
so a broken role table can never grant privileges.
*/
func (service *Service) ResolveRole(context context.Context, userID string) sec.UserRole {
	role, err := service.roleRepository.FindRole(context, userID)
	if err != nil {
		service.logger.Warn("role_lookup_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return sec.RoleUser
	}
	return role
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

/*
Register hashes and persists a new account, then sends the confirmation email.

Description: Every new account starts with the user role. A failed
confirmation email is logged; the account exists either way and the user can
ask for a new link with [Service.ResendVerification].

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	address := strings.TrimSpace(input.Email)

	existing, err := service.userRepository.FindByEmail(context, address)
	if existing != nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Email:        address,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))

	service.sendToken(context, user, email.ActionSignup, service.verificationTokenRepository, constants.VerifyTokenTTL, service.links.SiteURL)
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates credentials and issues an access token plus a refresh session.

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized with a generic message, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(input.Email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	now := service.now()
	if err := service.userRepository.TouchLogin(context, user.ID, now); err != nil {
		service.logger.Warn("last_login_update_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// Logout revokes the session of refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}
	return service.sessionRepository.Revoke(context, session.ID)
}

// # Session Management

/*
RefreshSession rotates a refresh token.

Description: The presented session is revoked before a new one is issued, so
each refresh token works once. The new access token carries the role stored
now, not the one of the previous token.
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefresh)
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefresh)
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// openSession issues the token pair for user and stores the refresh session.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	user.Role = service.ResolveRole(context, user.ID)

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	expiresAt := service.now().Add(constants.RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Password Recovery

/*
RequestPasswordReset sends a recovery email when address belongs to an account.

Description: The outcome is the same whether or not the account exists, and
a failed email is only logged, so the endpoint cannot be used to probe for
registered addresses.
*/
func (service *Service) RequestPasswordReset(context context.Context, address string) error {
	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(address))
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			service.logger.Warn("password_reset_lookup_failed", slog.Any("error", err))
		}
		return nil
	}

	service.sendToken(context, user, email.ActionRecovery, service.resetTokenRepository, constants.ResetTokenTTL, service.links.ResetRedirectURL)
	return nil
}

// CheckResetToken reports whether token can still reset a password, without
// consuming it.
func (service *Service) CheckResetToken(context context.Context, token string) error {
	_, err := service.resetTokenRepository.Get(context, sec.HashToken(token))
	return err
}

/*
ResetPassword completes the recovery flow.

Description: Verifies the token, stores the new hash and revokes every
session of the user. The token is single use.
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	tokenHash := sec.HashToken(token)

	userID, err := service.resetTokenRepository.Get(context, tokenHash)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_reset_password_hash_failed: %w", err))
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	if err := service.resetTokenRepository.Delete(context, tokenHash); err != nil {
		service.logger.Warn("reset_token_delete_failed", slog.Any("error", err))
	}
	if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
		service.logger.Warn("session_revoke_all_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	service.logger.Info("password_reset", slog.String("user_id", userID))
	return nil
}

/*
ChangePassword updates the password of a logged-in user.

Description: Verifies the current password, then revokes every other refresh
session so only the current device stays logged in.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_change_password_hash_failed: %w", err))
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(currentRefreshToken))
	if err == nil {
		_ = service.sessionRepository.RevokeOthers(context, userID, session.ID)
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))
	return nil
}

// # Email Confirmation

// VerifyEmail confirms the account email that token was sent to.
func (service *Service) VerifyEmail(context context.Context, token string) error {
	tokenHash := sec.HashToken(token)

	userID, err := service.verificationTokenRepository.Get(context, tokenHash)
	if err != nil {
		return err
	}

	if err := service.userRepository.MarkVerified(context, userID); err != nil {
		return err
	}

	_ = service.verificationTokenRepository.Delete(context, tokenHash)

	service.logger.Info("email_verified", slog.String("user_id", userID))
	return nil
}

// ResendVerification sends a new confirmation email to an unverified account.
// Like password recovery it answers the same way for unknown addresses.
func (service *Service) ResendVerification(context context.Context, address string) error {
	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(address))
	if err != nil || user.IsVerified {
		return nil
	}

	service.sendToken(context, user, email.ActionSignup, service.verificationTokenRepository, constants.VerifyTokenTTL, service.links.SiteURL)
	return nil
}

// sendToken stores a fresh single-use token for user and emails it. Failures
// are logged; the calling flow has already succeeded or must not reveal them.
func (service *Service) sendToken(context context.Context, user *User, action email.ActionType, tokens TokenRepository, ttl time.Duration, redirect string) {
	token, err := sec.GenerateSecureToken()
	if err != nil {
		service.logger.Error("email_token_generation_failed", slog.Any("error", err))
		return
	}

	if err := tokens.Set(context, sec.HashToken(token), user.ID, ttl); err != nil {
		service.logger.Error("email_token_store_failed",
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
		return
	}

	err = service.mailer.Dispatch(context, email.Request{
		RecipientEmail: user.Email,
		ActionType:     action,
		Token:          token,
		TokenHash:      token,
		RedirectURL:    redirect,
	})
	if err != nil {
		service.logger.Warn("account_email_failed",
			slog.String("action", string(action)),
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// # Maintenance

// PruneSessions deletes expired sessions every interval until ctx is done.
func (service *Service) PruneSessions(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := service.sessionRepository.DeleteExpired(ctx); err != nil {
				service.logger.Warn("session_prune_failed", slog.Any("error", err))
			}
		}
	}
}
