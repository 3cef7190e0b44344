// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/directorscut/internal/platform/constants"
	"github.com/taibuivan/directorscut/internal/platform/middleware"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/account"
)

// tokenTable verifies bearer tokens by lookup.
type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := table[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

var tokens = tokenTable{
	"master": {UserID: masterID, Role: string(sec.RoleMaster)},
	"admin":  {UserID: adminID, Role: string(sec.RoleAdmin)},
	"viewer": {UserID: userID, Role: string(sec.RoleUser)},
}

func newServer(t *testing.T) (*httpexpect.Expect, *fixture) {
	t.Helper()

	f := newFixture()
	handler := account.NewHandler(f.service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/me", handler.Routes())
	router.Mount("/users", handler.UserRoutes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return httpexpect.Default(t, server.URL), f
}

/*
TestHandler_Me covers the profile and session endpoints.
*/
func TestHandler_Me(t *testing.T) {
	t.Run("anonymous_is_unauthorized", func(t *testing.T) {
		e, _ := newServer(t)
		e.GET("/me").Expect().Status(http.StatusUnauthorized)
	})

	t.Run("profile_includes_role", func(t *testing.T) {
		e, _ := newServer(t)

		profile := e.GET("/me").WithHeader("Authorization", "Bearer admin").
			Expect().Status(http.StatusOK).JSON().Path("$.data").Object()

		profile.Value("role").String().IsEqual("admin")
		profile.NotContainsKey("password_hash")
	})

	t.Run("patch_rejects_long_bio", func(t *testing.T) {
		e, _ := newServer(t)

		e.PATCH("/me").WithHeader("Authorization", "Bearer viewer").
			WithJSON(map[string]string{"bio": strings.Repeat("x", account.MaxBioLength+1)}).
			Expect().Status(http.StatusBadRequest).
			JSON().Path("$.details[0].field").String().IsEqual(account.FieldBio)
	})

	t.Run("patch_updates_profile", func(t *testing.T) {
		e, _ := newServer(t)

		e.PATCH("/me").WithHeader("Authorization", "Bearer viewer").
			WithJSON(map[string]string{"last_name": "Fuller"}).
			Expect().Status(http.StatusOK).
			JSON().Path("$.data.last_name").String().IsEqual("Fuller")
	})

	t.Run("sessions_flag_the_current_one", func(t *testing.T) {
		e, f := newServer(t)
		f.sessions.add(userID, laptopID, "refresh-laptop")
		f.sessions.add(userID, phoneID, "refresh-phone")

		sessions := e.GET("/me/sessions").WithHeader("Authorization", "Bearer viewer").
			WithCookie(constants.RefreshTokenCookieName, "refresh-laptop").
			Expect().Status(http.StatusOK).JSON().Path("$.data").Array()

		sessions.Length().IsEqual(2)
		sessions.Value(0).Object().Value("is_current").Boolean().IsTrue()
		sessions.Value(1).Object().Value("is_current").Boolean().IsFalse()
		sessions.Value(0).Object().NotContainsKey("token_hash")

		e.DELETE("/me/sessions/{id}", phoneID).WithHeader("Authorization", "Bearer viewer").
			Expect().Status(http.StatusNoContent)
		e.DELETE("/me/sessions/{id}", phoneID).WithHeader("Authorization", "Bearer viewer").
			Expect().Status(http.StatusNotFound)
		e.DELETE("/me/sessions/{id}", "phone").WithHeader("Authorization", "Bearer viewer").
			Expect().Status(http.StatusNotFound)
	})

	t.Run("master_cannot_delete_self", func(t *testing.T) {
		e, _ := newServer(t)

		e.DELETE("/me").WithHeader("Authorization", "Bearer master").
			Expect().Status(http.StatusForbidden)
	})
}

/*
TestHandler_Users covers the master's user management endpoints.
*/
func TestHandler_Users(t *testing.T) {
	t.Run("non_master_is_forbidden", func(t *testing.T) {
		e, _ := newServer(t)

		e.GET("/users").WithHeader("Authorization", "Bearer admin").
			Expect().Status(http.StatusForbidden)
	})

	t.Run("list_with_meta", func(t *testing.T) {
		e, _ := newServer(t)

		response := e.GET("/users").WithQuery("limit", 2).WithHeader("Authorization", "Bearer master").
			Expect().Status(http.StatusOK).JSON().Object()

		response.Value("data").Array().Length().IsEqual(2)
		response.Path("$.meta.total").Number().IsEqual(4)
	})

	t.Run("role_change_to_admin", func(t *testing.T) {
		e, f := newServer(t)

		e.PUT("/users/{id}/role", userID).WithHeader("Authorization", "Bearer master").
			WithJSON(map[string]string{"role": "admin"}).
			Expect().Status(http.StatusOK).
			JSON().Path("$.data.role").String().IsEqual("admin")

		if f.accounts.role(userID) != sec.RoleAdmin {
			t.Fatalf("role not stored: %s", f.accounts.role(userID))
		}
	})

	t.Run("promotion_to_master_is_rejected", func(t *testing.T) {
		e, _ := newServer(t)

		e.PUT("/users/{id}/role", userID).WithHeader("Authorization", "Bearer master").
			WithJSON(map[string]string{"role": "master"}).
			Expect().Status(http.StatusBadRequest).
			JSON().Path("$.code").String().IsEqual("VALIDATION_ERROR")
	})

	t.Run("master_role_is_immutable", func(t *testing.T) {
		e, _ := newServer(t)

		e.PUT("/users/{id}/role", masterID).WithHeader("Authorization", "Bearer master").
			WithJSON(map[string]string{"role": "user"}).
			Expect().Status(http.StatusForbidden)
	})

	t.Run("delete_user", func(t *testing.T) {
		e, f := newServer(t)

		e.DELETE("/users/{id}", otherID).WithHeader("Authorization", "Bearer master").
			Expect().Status(http.StatusNoContent)

		if !f.accounts.isDeleted(otherID) {
			t.Fatal("account still active")
		}
	})

	t.Run("malformed_id_is_not_found", func(t *testing.T) {
		e, _ := newServer(t)

		e.DELETE("/users/{id}", "42").WithHeader("Authorization", "Bearer master").
			Expect().Status(http.StatusNotFound)
	})
}
