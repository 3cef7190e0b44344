// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/middleware"
	requestutil "github.com/taibuivan/directorscut/internal/platform/request"
	"github.com/taibuivan/directorscut/internal/platform/respond"
	"github.com/taibuivan/directorscut/pkg/convert"
	"github.com/taibuivan/directorscut/pkg/pagination"
	"github.com/taibuivan/directorscut/pkg/query"
	"github.com/taibuivan/directorscut/pkg/uuid"
)

// # Handler Implementation

// Handler implements the HTTP layer for browsing and managing movies.
type Handler struct {
	service *Service
}

// NewHandler constructs a new movie [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the movie endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): catalog query, option sets and detail.
//   - Management (Authenticated): every write goes through the admin
//     workflow, which decides per movie and per role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listMovies)
	router.Get("/options", handler.getOptions)
	router.Get("/{id}", handler.getMovie)

	// ## Content Management
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/{id}/capabilities", handler.getCapabilities)
		protected.Post("/", handler.createMovie)
		protected.Put("/{id}", handler.updateMovie)
		protected.Delete("/{id}", handler.deleteMovie)
		protected.Patch("/{id}/featured", handler.setFeatured)
	})

	return router
}

// AdminRoutes returns the dashboard listing, mounted under /admin/movies.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.adminList)
	return router
}

// # Discovery Endpoints

/*
GET /api/v1/movies.

Description: Runs the catalog query engine. All criteria combine with AND.

Request:
  - q: string (substring of title, director or synopsis)
  - genre: []string (repeatable or comma-joined; every genre must match)
  - year: int
  - min, max: int (duration range in minutes; a missing end is open)
  - page: int (clamped into the available pages)

Response:
  - 200: catalog.View
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Catalog(request.Context(), ParseFilterState(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// ParseFilterState reads a [catalog.FilterState] from the query string.
func ParseFilterState(request *http.Request) catalog.FilterState {
	values := request.URL.Query()

	state := catalog.FilterState{
		Query:  strings.TrimSpace(values.Get("q")),
		Genres: catalog.NewGenreList(query.StringList(values["genre"])),
		Year:   convert.ToIntPtr(values.Get("year")),
		Page:   convert.ToIntD(values.Get("page"), pagination.DefaultPage),
	}

	lower, upper := convert.ToIntPtr(values.Get("min")), convert.ToIntPtr(values.Get("max"))
	if lower != nil || upper != nil {
		selection := catalog.Range{Min: 0, Max: catalog.MaxDurationMinutes}
		if lower != nil {
			selection.Min = *lower
		}
		if upper != nil {
			selection.Max = *upper
		}
		state.Duration = &selection
	}

	return state
}

// GET /api/v1/movies/options.
func (handler *Handler) getOptions(writer http.ResponseWriter, request *http.Request) {
	options, err := handler.service.Options(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, options)
}

/*
GET /api/v1/movies/{id}.

Description: Returns one movie and counts a view in the background. The
response never waits for, or reports on, the view counter.

Response:
  - 200: catalog.Movie
  - 404: ErrNotFound
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := movieID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.GetMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.service.TrackView(request.Context(), id)
	respond.OK(writer, movie)
}

// GET /api/v1/movies/{id}/capabilities.
func (handler *Handler) getCapabilities(writer http.ResponseWriter, request *http.Request) {
	id, err := movieID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	capabilities, err := handler.service.Capabilities(request.Context(), actorOf(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, capabilities)
}

// GET /api/v1/admin/movies.
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.service.AdminList(request.Context(), actorOf(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movies)
}

// # Mutation Endpoints

/*
POST /api/v1/movies.

Request (Body):
  - admin.MovieInput: JSON object; duration as minutes or "HH:MM", genres as
    an array or a comma-joined string

Response:
  - 201: catalog.Movie
  - 400: VALIDATION_ERROR (first failing field only)
  - 409: QUOTA_EXCEEDED
*/
func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input admin.MovieInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.CreateMovie(request.Context(), actorOf(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, movie)
}

/*
PUT /api/v1/movies/{id}.

Response:
  - 200: catalog.Movie
  - 403: FORBIDDEN (not the creator and not privileged)
  - 404: ErrNotFound
*/
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := movieID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input admin.MovieInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.UpdateMovie(request.Context(), actorOf(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movie)
}

// DELETE /api/v1/movies/{id}.
func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := movieID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMovie(request.Context(), actorOf(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// featuredRequest is the body of the featured toggle.
type featuredRequest struct {
	Featured bool `json:"featured"`
}

// PATCH /api/v1/movies/{id}/featured.
func (handler *Handler) setFeatured(writer http.ResponseWriter, request *http.Request) {
	id, err := movieID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input featuredRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.SetFeatured(request.Context(), actorOf(request), id, input.Featured)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movie)
}

// # Helpers

// movieID reads the {id} parameter. Anything that is not a UUID cannot name
// a movie.
func movieID(request *http.Request) (string, error) {
	id := requestutil.ID(request, "id")
	if !uuid.Valid(id) {
		return "", apperr.NotFound("Movie")
	}
	return id, nil
}

func actorOf(request *http.Request) admin.Actor {
	return admin.ActorFromClaims(requestutil.Claims(request))
}
