// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/core/movie"
	"github.com/taibuivan/directorscut/internal/platform/middleware"
	"github.com/taibuivan/directorscut/internal/platform/sec"
)

// tokenTable verifies bearer tokens by lookup.
type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := table[token]; ok {
		return claims, nil
	}
	if token == "expired" {
		return nil, sec.ErrTokenExpired
	}
	return nil, errors.New("unknown token")
}

var tokens = tokenTable{
	"owner":    {UserID: ownerID, Role: string(sec.RoleUser)},
	"stranger": {UserID: strangerID, Role: string(sec.RoleUser)},
	"admin":    {UserID: adminID, Role: string(sec.RoleAdmin)},
}

func newServer(t *testing.T, repository *memoryRepository) (*httpexpect.Expect, *movie.Service) {
	t.Helper()

	service := newService(repository)
	handler := movie.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/movies", handler.Routes())
	router.Mount("/admin/movies", handler.AdminRoutes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return httpexpect.Default(t, server.URL), service
}

/*
TestHandler_Browse covers the public discovery endpoints.
*/
func TestHandler_Browse(t *testing.T) {
	movies := []catalog.Movie{
		{ID: "0190f5a2-0000-7000-8000-0000000000a1", Title: "Eraserhead", Director: "David Lynch", Year: 1977,
			Duration: 89, Genres: catalog.GenreList{"Surreal Horror", "Experimental"}, Featured: true},
		{ID: "0190f5a2-0000-7000-8000-0000000000a2", Title: "Holy Motors", Director: "Leos Carax", Year: 2012,
			Duration: 115, Genres: catalog.GenreList{"Arthouse"}},
	}
	repository := newMemoryRepository(movies...)
	e, service := newServer(t, repository)

	t.Run("unfiltered_catalog", func(t *testing.T) {
		data := e.GET("/movies").Expect().Status(http.StatusOK).JSON().Path("$.data").Object()

		data.Value("items").Array().Length().IsEqual(2)
		data.Value("featured").Array().Length().IsEqual(1)
		data.Value("total_pages").Number().IsEqual(1)
		data.Path("$.options.years").Array().IsEqual([]int{2012, 1977})
		data.Path("$.items[0].duration").String().IsEqual("01:29")
	})

	t.Run("query_and_genre_filters", func(t *testing.T) {
		data := e.GET("/movies").
			WithQuery("q", "LYNCH").
			WithQuery("genre", "experimental,surreal horror").
			Expect().Status(http.StatusOK).JSON().Path("$.data").Object()

		data.Value("total").Number().IsEqual(1)
		data.Value("featured").Array().IsEmpty()
		data.Path("$.items[0].title").String().IsEqual("Eraserhead")
	})

	t.Run("open_ended_duration_range", func(t *testing.T) {
		e.GET("/movies").WithQuery("min", 100).
			Expect().Status(http.StatusOK).
			JSON().Path("$.data.items[0].title").String().IsEqual("Holy Motors")
	})

	t.Run("options", func(t *testing.T) {
		options := e.GET("/movies/options").Expect().Status(http.StatusOK).JSON().Path("$.data").Object()

		options.Value("genres").Array().IsEqual([]string{"Arthouse", "Experimental", "Surreal Horror"})
		options.Path("$.durations.min").Number().IsEqual(89)
		options.Path("$.durations.max").Number().IsEqual(115)
	})

	t.Run("detail_counts_a_view", func(t *testing.T) {
		e.GET("/movies/{id}", movies[1].ID).Expect().Status(http.StatusOK).
			JSON().Path("$.data.director").String().IsEqual("Leos Carax")

		service.WaitViews()
		assert.Equal(t, 1, repository.viewCount(movies[1].ID))
	})

	t.Run("malformed_id_is_not_found", func(t *testing.T) {
		e.GET("/movies/{id}", "not-a-uuid").Expect().Status(http.StatusNotFound)
	})
}

/*
TestHandler_Manage covers the authenticated write endpoints.
*/
func TestHandler_Manage(t *testing.T) {
	body := map[string]any{
		"title":    "Wanda",
		"director": "Barbara Loden",
		"year":     1970,
		"duration": "1h42m",
		"genres":   "drama, crime",
	}

	t.Run("anonymous_write_is_unauthorized", func(t *testing.T) {
		e, _ := newServer(t, newMemoryRepository())
		e.POST("/movies").WithJSON(body).Expect().Status(http.StatusUnauthorized)
	})

	t.Run("expired_token_asks_for_login", func(t *testing.T) {
		e, _ := newServer(t, newMemoryRepository())
		e.POST("/movies").WithHeader("Authorization", "Bearer expired").WithJSON(body).
			Expect().Status(http.StatusUnauthorized).
			JSON().Path("$.code").String().IsEqual("SESSION_EXPIRED")
	})

	t.Run("create_then_edit_as_owner", func(t *testing.T) {
		e, _ := newServer(t, newMemoryRepository())

		created := e.POST("/movies").WithHeader("Authorization", "Bearer owner").WithJSON(body).
			Expect().Status(http.StatusCreated).JSON().Path("$.data").Object()

		created.Value("duration").String().IsEqual("01:42")
		created.Value("genres").Array().IsEqual([]string{"Drama", "Crime"})
		id := created.Value("id").String().Raw()

		edit := map[string]any{"title": "Wanda (1970)", "director": "Barbara Loden", "year": 1970, "duration": 102, "genres": []string{"Drama"}}

		e.PUT("/movies/{id}", id).WithHeader("Authorization", "Bearer stranger").WithJSON(edit).
			Expect().Status(http.StatusForbidden)

		e.PUT("/movies/{id}", id).WithHeader("Authorization", "Bearer owner").WithJSON(edit).
			Expect().Status(http.StatusOK).
			JSON().Path("$.data.title").String().IsEqual("Wanda (1970)")

		e.GET("/movies/{id}/capabilities", id).WithHeader("Authorization", "Bearer stranger").
			Expect().Status(http.StatusOK).
			JSON().Path("$.data.state").String().IsEqual("not_editable")
	})

	t.Run("validation_reports_one_field", func(t *testing.T) {
		e, _ := newServer(t, newMemoryRepository())

		invalid := map[string]any{"title": "Wanda", "director": "", "year": 1700, "duration": "", "genres": []string{}}
		response := e.POST("/movies").WithHeader("Authorization", "Bearer admin").WithJSON(invalid).
			Expect().Status(http.StatusBadRequest).JSON()

		response.Path("$.code").String().IsEqual("VALIDATION_ERROR")
		response.Path("$.details").Array().Length().IsEqual(1)
		response.Path("$.details[0].field").String().IsEqual(catalog.FieldDirector)
	})

	t.Run("featured_toggle_and_quota", func(t *testing.T) {
		repository := newMemoryRepository(seedMovies(4, 3)...)
		e, _ := newServer(t, repository)
		target := repository.movies[3].ID

		e.PATCH("/movies/{id}/featured", target).WithHeader("Authorization", "Bearer owner").
			WithJSON(map[string]bool{"featured": true}).
			Expect().Status(http.StatusForbidden)

		e.PATCH("/movies/{id}/featured", target).WithHeader("Authorization", "Bearer admin").
			WithJSON(map[string]bool{"featured": true}).
			Expect().Status(http.StatusConflict).
			JSON().Path("$.code").String().IsEqual("QUOTA_EXCEEDED")
	})

	t.Run("delete_and_admin_list", func(t *testing.T) {
		repository := newMemoryRepository(seedMovies(2, 0)...)
		e, _ := newServer(t, repository)

		e.GET("/admin/movies").WithHeader("Authorization", "Bearer stranger").
			Expect().Status(http.StatusOK).JSON().Path("$.data").Array().IsEmpty()

		e.DELETE("/movies/{id}", repository.movies[0].ID).WithHeader("Authorization", "Bearer admin").
			Expect().Status(http.StatusNoContent)

		e.GET("/admin/movies").WithHeader("Authorization", "Bearer owner").
			Expect().Status(http.StatusOK).JSON().Path("$.data").Array().Length().IsEqual(1)
	})
}
