// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/middleware"
	requestutil "github.com/taibuivan/directorscut/internal/platform/request"
	"github.com/taibuivan/directorscut/internal/platform/respond"
	"github.com/taibuivan/directorscut/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)
	router.Get("/by-slug/{slug}", handler.getGenreBySlug)

	router.Group(func(master chi.Router) {
		master.Use(middleware.RequireRole(sec.RoleMaster))

		master.Post("/", handler.createGenre)
		master.Put("/{id}", handler.renameGenre)
		master.Delete("/{id}", handler.deleteGenre)
	})
}

type genreRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.GetGenre(request.Context(), genreID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) getGenreBySlug(writer http.ResponseWriter, request *http.Request) {
	genre, err := handler.service.GetGenreBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.CreateGenre(request.Context(), actorOf(request), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}

func (handler *Handler) renameGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.RenameGenre(request.Context(), actorOf(request), genreID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGenre(request.Context(), actorOf(request), genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func parseID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("Genre")
	}
	return id, nil
}

func actorOf(request *http.Request) admin.Actor {
	return admin.ActorFromClaims(requestutil.Claims(request))
}
