// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/constants"
	"github.com/taibuivan/directorscut/internal/platform/middleware"
	requestutil "github.com/taibuivan/directorscut/internal/platform/request"
	"github.com/taibuivan/directorscut/internal/platform/respond"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/pkg/pagination"
	"github.com/taibuivan/directorscut/pkg/uuid"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the /me endpoints. All of them require a logged-in user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// Account Management
	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)
	router.Delete("/", handler.deleteMe)

	// Session Security
	router.Get("/sessions", handler.listSessions)
	router.Delete("/sessions/{id}", handler.revokeSession)

	return router
}

// UserRoutes returns the master's user management endpoints, mounted under
// /users.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleMaster))

	router.Get("/", handler.listUsers)
	router.Put("/{id}/role", handler.changeRole)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/me.

Response:
  - 200: auth.User: Fully hydrated user profile, role included
  - 401: UNAUTHORIZED
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

/*
PATCH /api/v1/me.

Description: Applies partial updates to the authenticated user's profile.

Response:
  - 200: auth.User: The updated profile
  - 400: VALIDATION_ERROR: Bio over 500 characters, bad avatar URL, long names
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// DELETE /api/v1/me.
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.DeleteAccount(request.Context(), actorOf(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Session Endpoints

// GET /api/v1/me/sessions.
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var current string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		current = cookie.Value
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), userID, current)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

// DELETE /api/v1/me/sessions/{id}.
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.ID(request, "id")
	if !uuid.Valid(sessionID) {
		respond.Error(writer, request, apperr.NotFound("Session"))
		return
	}

	if err := handler.accountService.RevokeSession(request.Context(), userID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # User Management Endpoints

/*
GET /api/v1/users.

Request:
  - page, limit: pagination

Response:
  - 200: []auth.User with pagination meta
  - 403: FORBIDDEN: not the master
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.accountService.ListUsers(request.Context(), actorOf(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Users, page.Meta)
}

type roleRequest struct {
	Role string `json:"role"`
}

/*
PUT /api/v1/users/{id}/role.

Request:
  - Body: {"role": "admin" | "user"}

Response:
  - 200: auth.User with the new role
  - 400: VALIDATION_ERROR: any other role
  - 403: FORBIDDEN: target is a master account
*/
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	id, ok := userID(writer, request)
	if !ok {
		return
	}

	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.ChangeRole(request.Context(), actorOf(request), id, sec.UserRole(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// DELETE /api/v1/users/{id}.
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	id, ok := userID(writer, request)
	if !ok {
		return
	}

	if err := handler.accountService.DeleteUser(request.Context(), actorOf(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Helpers

func userID(writer http.ResponseWriter, request *http.Request) (string, bool) {
	id := requestutil.ID(request, "id")
	if !uuid.Valid(id) {
		respond.Error(writer, request, apperr.NotFound("User"))
		return "", false
	}
	return id, true
}

func actorOf(request *http.Request) admin.Actor {
	return admin.ActorFromClaims(requestutil.Claims(request))
}
