// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/validate"
	"github.com/taibuivan/directorscut/pkg/slug"
)

// MaxGenreNameLength bounds a normalized genre name.
const MaxGenreNameLength = 50

// PrepareGenreName authorizes and normalizes a genre name for an add
// (selfID = 0) or a rename of genre selfID. A name equal to another genre's,
// ignoring case and spacing, fails with DUPLICATE_GENRE, and so does a name
// whose URL slug another genre already has. A name without any letter or
// digit that survives in a slug is invalid.
func PrepareGenreName(actor Actor, raw string, existing []catalog.Genre, selfID int) (string, error) {
	if err := Can(ActionManageGenres, actor, nil).Err(); err != nil {
		return "", err
	}

	name := catalog.NormalizeGenreName(raw)
	v := &validate.Validator{}
	urlName := slug.From(name)
	v.Required(catalog.FieldName, name).
		MaxLen(catalog.FieldName, name, MaxGenreNameLength).
		Custom(catalog.FieldName, urlName == "", "Must contain a letter or digit")
	if err := v.FirstErr(); err != nil {
		return "", err
	}

	key := catalog.GenreKey(name)
	for _, genre := range existing {
		if genre.ID != selfID && catalog.GenreKey(genre.Name) == key {
			return "", apperr.DuplicateGenre(genre.Name)
		}
	}
	for _, genre := range existing {
		if genre.ID != selfID && slug.From(genre.Name) == urlName {
			return "", apperr.GenreSlugTaken(urlName)
		}
	}
	return name, nil
}

// PrepareGenreDelete authorizes removing a genre. Movies tagged with it keep
// the tag: deletion never cascades.
func PrepareGenreDelete(actor Actor) error {
	return Can(ActionManageGenres, actor, nil).Err()
}
