// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/directorscut/pkg/pointer"
	"github.com/taibuivan/directorscut/pkg/slice"
)

// # Filter State

// Range is an inclusive [Min, Max] interval of minutes.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether minutes lies inside the range, bounds included.
func (r Range) Contains(minutes int) bool {
	return minutes >= r.Min && minutes <= r.Max
}

// FilterState is what a browsing session asks for. Zero values mean
// "no constraint"; Page is 1-indexed.
type FilterState struct {
	Query    string   `json:"query"`
	Genres   []string `json:"genres"`
	Year     *int     `json:"year"`
	Duration *Range   `json:"duration"`
	Page     int      `json:"page"`
}

// IsActive reports whether any criterion narrows the catalog. A duration
// selection equal to the dataset bounds does not count.
func (state FilterState) IsActive(bounds Range) bool {
	switch {
	case strings.TrimSpace(state.Query) != "":
		return true
	case len(NewGenreList(state.Genres)) > 0:
		return true
	case state.Year != nil:
		return true
	case state.Duration != nil && *state.Duration != bounds:
		return true
	}
	return false
}

// # Filtering

// Filter returns the movies matching every criterion of state, in input order:
//
//  1. the query is empty or a case-insensitive substring of title, director or synopsis;
//  2. every selected genre is one of the movie's genres (AND, not OR);
//  3. the year is unset or equal;
//  4. the duration range is unset or contains the movie's minutes.
func Filter(movies []Movie, state FilterState) []Movie {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(state.Query))
	wanted := NewGenreList(state.Genres).Keys()

	return slice.Filter(movies, func(movie Movie) bool {
		if query != "" && !matchesText(fold, query, movie) {
			return false
		}
		if len(wanted) > 0 && !hasAllGenres(movie.Genres.Keys(), wanted) {
			return false
		}
		if state.Year != nil && movie.Year != *state.Year {
			return false
		}
		if state.Duration != nil && !state.Duration.Contains(movie.Duration.Minutes()) {
			return false
		}
		return true
	})
}

// matchesText checks the folded query against the searchable fields.
func matchesText(fold cases.Caser, query string, movie Movie) bool {
	for _, field := range []string{movie.Title, movie.Director, pointer.Val(movie.Synopsis)} {
		if strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}

func hasAllGenres(have, wanted map[string]struct{}) bool {
	for key := range wanted {
		if _, ok := have[key]; !ok {
			return false
		}
	}
	return true
}
