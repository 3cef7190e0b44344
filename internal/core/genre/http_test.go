// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/directorscut/internal/core/genre"
	"github.com/taibuivan/directorscut/internal/platform/middleware"
	"github.com/taibuivan/directorscut/internal/platform/sec"
)

type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := table[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

/*
TestHandler_Genres walks the public lookups and the master-only writes.
*/
func TestHandler_Genres(t *testing.T) {
	tokens := tokenTable{
		"master": {UserID: master.ID, Role: string(sec.RoleMaster)},
		"admin":  {UserID: curator.ID, Role: string(sec.RoleAdmin)},
	}

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Route("/genres", genre.NewHandler(newService(newMemoryRepository())).RegisterRoutes)

	server := httptest.NewServer(router)
	defer server.Close()

	e := httpexpect.Default(t, server.URL)

	e.POST("/genres").WithJSON(map[string]string{"name": "Western"}).
		Expect().Status(http.StatusUnauthorized)

	e.POST("/genres").WithHeader("Authorization", "Bearer admin").
		WithJSON(map[string]string{"name": "Western"}).
		Expect().Status(http.StatusForbidden)

	created := e.POST("/genres").WithHeader("Authorization", "Bearer master").
		WithJSON(map[string]string{"name": "spaghetti  western"}).
		Expect().Status(http.StatusCreated).JSON().Path("$.data").Object()
	created.Value("name").String().IsEqual("Spaghetti Western")
	created.Value("slug").String().IsEqual("spaghetti-western")

	e.POST("/genres").WithHeader("Authorization", "Bearer master").
		WithJSON(map[string]string{"name": "Spaghetti Western"}).
		Expect().Status(http.StatusConflict).
		JSON().Path("$.code").String().IsEqual("DUPLICATE_GENRE")

	e.GET("/genres/by-slug/{slug}", "spaghetti-western").Expect().Status(http.StatusOK).
		JSON().Path("$.data.id").Number().IsEqual(1)

	e.GET("/genres").Expect().Status(http.StatusOK).JSON().Path("$.data").Array().Length().IsEqual(1)

	e.GET("/genres/{id}", "abc").Expect().Status(http.StatusNotFound)

	e.DELETE("/genres/{id}", 1).WithHeader("Authorization", "Bearer master").
		Expect().Status(http.StatusNoContent)

	e.GET("/genres/{id}", 1).Expect().Status(http.StatusNotFound)
}
