// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/platform/validate"
	"github.com/taibuivan/directorscut/internal/users/auth"
	"github.com/taibuivan/directorscut/pkg/pagination"
)

// # Service Layer

// Service orchestrates profile, session and user management use cases.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(accountRepo AccountRepository, sessionRepo SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Profile Management

// GetProfile retrieves the full private identity of a user.
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

// UpdateProfileInput is a partial profile update; nil fields are unchanged.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Bio       *string
	AvatarURL *string
}

// Validate checks every provided field.
func (input UpdateProfileInput) Validate() error {
	v := &validate.Validator{}
	if input.FirstName != nil {
		v.MaxLen(FieldFirstName, *input.FirstName, MaxNameLength)
	}
	if input.LastName != nil {
		v.MaxLen(FieldLastName, *input.LastName, MaxNameLength)
	}
	if input.Bio != nil {
		v.MaxLen(FieldBio, *input.Bio, MaxBioLength)
	}
	if input.AvatarURL != nil {
		v.OptionalURL(FieldAvatarURL, *input.AvatarURL)
	}
	return v.Err()
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

/*
DeleteAccount soft-deletes the caller's own account and signs it out
everywhere. The master account cannot delete itself.
*/
func (service *Service) DeleteAccount(context context.Context, actor admin.Actor) error {
	if actor.Role.IsMaster() {
		return apperr.Forbidden("Master accounts cannot be deleted")
	}
	return service.removeUser(context, actor.ID, actor.ID)
}

func (service *Service) removeUser(context context.Context, userID, actorID string) error {
	if err := service.accountRepository.SoftDelete(context, userID); err != nil {
		return err
	}

	if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
		service.logger.Warn("session_revoke_all_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	service.logger.Warn("user_account_deleted",
		slog.String("user_id", userID),
		slog.String("actor_id", actorID),
	)
	return nil
}

// # Session Security

// ListSessions lists the active sessions of userID, flagging the one whose
// refresh token is currentToken.
func (service *Service) ListSessions(context context.Context, userID, currentToken string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	if currentToken != "" {
		current := sec.HashToken(currentToken)
		for i := range sessions {
			sessions[i].IsCurrent = sessions[i].TokenHash == current
		}
	}
	return sessions, nil
}

// RevokeSession terminates one session of userID.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionRepository.Revoke(context, userID, sessionID); err != nil {
		return err
	}

	service.logger.Info("user_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)
	return nil
}

// # User Management (master)

// UserPage is one page of the user list.
type UserPage struct {
	Users []auth.User
	Meta  pagination.Meta
}

// ListUsers returns a page of every account with its role.
func (service *Service) ListUsers(context context.Context, actor admin.Actor, params pagination.Params) (UserPage, error) {
	if err := admin.Can(admin.ActionManageUsers, actor, nil).Err(); err != nil {
		return UserPage{}, err
	}

	users, total, err := service.accountRepository.List(context, params)
	if err != nil {
		return UserPage{}, err
	}
	return UserPage{Users: users, Meta: pagination.NewMeta(params.Page, params.Limit, total)}, nil
}

/*
ChangeRole assigns admin or user to the account userID.

Description: Only the master may do it; master accounts keep their role and
nobody is promoted to master.

Returns:
  - *auth.User: The account with its new role
  - error: FORBIDDEN, VALIDATION_ERROR, NOT_FOUND or storage failures
*/
func (service *Service) ChangeRole(context context.Context, actor admin.Actor, userID string, role sec.UserRole) (*auth.User, error) {
	if err := admin.Can(admin.ActionManageUsers, actor, nil).Err(); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := admin.PrepareRoleChange(actor, user.Role, role); err != nil {
		return nil, err
	}

	if err := service.accountRepository.SetRole(context, userID, role, actor.ID); err != nil {
		return nil, err
	}

	service.logger.Info("user_role_changed",
		slog.String("user_id", userID),
		slog.String("from", string(user.Role)),
		slog.String("to", string(role)),
		slog.String("actor_id", actor.ID),
	)

	user.Role = role
	return user, nil
}

// DeleteUser removes a non-master account on behalf of the master.
func (service *Service) DeleteUser(context context.Context, actor admin.Actor, userID string) error {
	if err := admin.Can(admin.ActionManageUsers, actor, nil).Err(); err != nil {
		return err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if err := admin.PrepareUserDelete(actor, user.Role); err != nil {
		return err
	}

	return service.removeUser(context, userID, actor.ID)
}
