// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the Director's Cut domain entities and the query engine
that turns a full movie list into what a browsing session displays.

Everything in this package is pure and deterministic: no I/O, no clock, no
shared state. The only exception is [Snapshot], which wraps a fetch function
with burst suppression for the services that feed the engine.

Core Responsibility:

  - Entities: [Movie], [Genre], the canonical [Duration] and the [GenreList] set.
  - Normalization: genre names and free-form duration strings.
  - Query: filtering, option sets, pagination and the featured section.
*/
package catalog

import (
	"time"

	"golang.org/x/text/language"
)

// # Engine Constants

const (
	// PageSize is the number of movies on one catalog grid page.
	PageSize = 8

	// FeaturedLimit is the system-wide cap of movies with Featured = true.
	FeaturedLimit = 3
)

// locale drives title casing, case folding and collation.
var locale = language.Und

// # Core Entities

// Movie is one catalog entry.
type Movie struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Director  string    `json:"director"`
	Year      int       `json:"year"`
	Duration  Duration  `json:"duration"`
	Genres    GenreList `json:"genres"`
	Thumbnail *string   `json:"thumbnail"`
	VideoURL  *string   `json:"video_url"`
	Synopsis  *string   `json:"synopsis"`
	Views     int64     `json:"views"`
	Featured  bool      `json:"featured"`
	CreatedBy *string   `json:"created_by"` // nil once the owning account is removed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID created the movie.
func (m Movie) IsOwnedBy(userID string) bool {
	return userID != "" && m.CreatedBy != nil && *m.CreatedBy == userID
}

// Genre is an entry of the managed genre list offered by the admin form.
// The filter options of the public catalog never come from this list, only
// from the genres movies actually use.
type Genre struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldDirector  = "director"
	FieldYear      = "year"
	FieldDuration  = "duration"
	FieldGenres    = "genres"
	FieldThumbnail = "thumbnail"
	FieldVideoURL  = "video_url"
	FieldSynopsis  = "synopsis"
	FieldName      = "name"
)
