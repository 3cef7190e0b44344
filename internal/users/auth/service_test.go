// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/directorscut/internal/notify/email"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/auth"
)

/*
TestService_Register covers account creation and the confirmation email.
*/
func TestService_Register(t *testing.T) {
	t.Run("new_account_is_a_plain_unverified_user", func(t *testing.T) {
		f := newFixture()
		user := f.register("agnes@example.com")

		assert.Equal(t, sec.RoleUser, user.Role)
		assert.False(t, user.IsVerified)
		assert.NotEqual(t, password, f.users.get(user.ID).PasswordHash)
	})

	t.Run("confirmation_email_token_verifies_the_account", func(t *testing.T) {
		f := newFixture()
		user := f.register("agnes@example.com")

		sent, ok := f.mail.last()
		require.True(t, ok)
		assert.Equal(t, email.ActionSignup, sent.ActionType)
		assert.Equal(t, "agnes@example.com", sent.RecipientEmail)
		assert.Equal(t, links.SiteURL, sent.RedirectURL)

		require.NoError(t, f.service.VerifyEmail(context.Background(), sent.Token))
		assert.True(t, f.users.get(user.ID).IsVerified)

		err := f.service.VerifyEmail(context.Background(), sent.Token)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "tokens are single use")
	})

	t.Run("duplicate_email_ignores_case", func(t *testing.T) {
		f := newFixture()
		f.register("agnes@example.com")

		_, err := f.service.Register(context.Background(), auth.RegisterInput{Email: "AGNES@example.com", Password: password})
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	t.Run("email_failure_keeps_the_account", func(t *testing.T) {
		f := newFixture()
		f.mail.err = errStore

		user := f.register("agnes@example.com")
		assert.NotEmpty(t, user.ID)
		assert.Contains(t, f.logs.String(), "account_email_failed")
	})
}

/*
TestService_Login checks credentials and session issue.
*/
func TestService_Login(t *testing.T) {
	f := newFixture()
	user := f.register("agnes@example.com")
	f.users.setRole(user.ID, sec.RoleAdmin)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@example.com", password},
		{"wrong_password", "agnes@example.com", "incorrect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), auth.LoginInput{Email: tt.email, Password: tt.password})
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeUnauthorized, appError.Code)
			assert.Equal(t, "Invalid login credentials", appError.Message)
		})
	}

	t.Run("token_carries_the_stored_role", func(t *testing.T) {
		session, err := f.service.Login(context.Background(), auth.LoginInput{Email: "agnes@example.com", Password: password})
		require.NoError(t, err)

		assert.Equal(t, user.ID+"|admin", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.NotNil(t, session.User.LastLoginAt)
		assert.Equal(t, 1, f.sessions.active(user.ID))
	})
}

/*
TestService_RefreshSession rotates refresh tokens.
*/
func TestService_RefreshSession(t *testing.T) {
	f := newFixture()
	user := f.register("agnes@example.com")

	first, err := f.service.Login(context.Background(), auth.LoginInput{Email: user.Email, Password: password})
	require.NoError(t, err)

	f.users.setRole(user.ID, sec.RoleMaster)

	second, err := f.service.RefreshSession(context.Background(), first.RefreshToken, "test", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, user.ID+"|master", second.AccessToken)

	_, err = f.service.RefreshSession(context.Background(), first.RefreshToken, "test", "127.0.0.1")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized), "a rotated token is dead")

	require.NoError(t, f.service.Logout(context.Background(), second.RefreshToken))
	assert.Zero(t, f.sessions.active(user.ID))
}

/*
TestService_ResolveRole falls back to the lowest role.
*/
func TestService_ResolveRole(t *testing.T) {
	f := newFixture()
	user := f.register("agnes@example.com")
	f.users.setRole(user.ID, sec.RoleAdmin)

	assert.Equal(t, sec.RoleAdmin, f.service.ResolveRole(context.Background(), user.ID))

	f.users.roleErr = errStore
	assert.Equal(t, sec.RoleUser, f.service.ResolveRole(context.Background(), user.ID))
	assert.Contains(t, f.logs.String(), "role_lookup_failed")
}

/*
TestService_PasswordRecovery covers forgot, reset and change.
*/
func TestService_PasswordRecovery(t *testing.T) {
	t.Run("unknown_email_sends_nothing", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.service.RequestPasswordReset(context.Background(), "nobody@example.com"))
		assert.Zero(t, f.mail.count())
	})

	t.Run("reset_revokes_every_session", func(t *testing.T) {
		f := newFixture()
		user := f.register("agnes@example.com")
		_, err := f.service.Login(context.Background(), auth.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)

		require.NoError(t, f.service.RequestPasswordReset(context.Background(), user.Email))
		sent, _ := f.mail.last()
		assert.Equal(t, email.ActionRecovery, sent.ActionType)
		assert.Equal(t, links.ResetRedirectURL, sent.RedirectURL)

		require.NoError(t, f.service.CheckResetToken(context.Background(), sent.Token))
		require.NoError(t, f.service.ResetPassword(context.Background(), sent.Token, "a brand new secret"))

		assert.Zero(t, f.sessions.active(user.ID))
		assert.True(t, sec.CheckPasswordHash("a brand new secret", f.users.get(user.ID).PasswordHash))
		assert.Error(t, f.service.CheckResetToken(context.Background(), sent.Token))
	})

	t.Run("change_keeps_the_current_session", func(t *testing.T) {
		f := newFixture()
		user := f.register("agnes@example.com")
		phone, err := f.service.Login(context.Background(), auth.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)
		laptop, err := f.service.Login(context.Background(), auth.LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)

		err = f.service.ChangePassword(context.Background(), user.ID, "incorrect", "whatever123", laptop.RefreshToken)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

		require.NoError(t, f.service.ChangePassword(context.Background(), user.ID, password, "whatever123", laptop.RefreshToken))
		assert.Equal(t, 1, f.sessions.active(user.ID))

		_, err = f.service.RefreshSession(context.Background(), phone.RefreshToken, "", "")
		assert.Error(t, err)
	})

	t.Run("resend_skips_verified_accounts", func(t *testing.T) {
		f := newFixture()
		user := f.register("agnes@example.com")
		require.NoError(t, f.users.MarkVerified(context.Background(), user.ID))

		require.NoError(t, f.service.ResendVerification(context.Background(), user.Email))
		assert.Equal(t, 1, f.mail.count())
	})
}

/*
TestService_PruneSessions runs the janitor until its context ends.
*/
func TestService_PruneSessions(t *testing.T) {
	f := newFixture()
	f.sessions.pruned = make(chan struct{}, 1)
	f.register("janitor@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- f.service.PruneSessions(ctx, time.Millisecond) }()

	select {
	case <-f.sessions.pruned:
	case <-time.After(time.Second):
		t.Fatal("no prune within a second")
	}

	cancel()
	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
