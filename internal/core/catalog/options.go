// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"sort"

	"golang.org/x/text/collate"
)

// OptionSets are the values the filter controls may offer for a dataset.
type OptionSets struct {
	// Genres in use across all movies, collated ascending.
	Genres []string `json:"genres"`
	// Years present, most recent first.
	Years []int `json:"years"`
	// Durations spans the movies with a known running time; [0,0] if none.
	Durations Range `json:"durations"`
}

// DeriveOptionSets projects the full movie list onto filter options.
// It is recomputed on every call; nothing is cached.
func DeriveOptionSets(movies []Movie) OptionSets {
	genres := make([]string, 0)
	seenGenres := make(map[string]struct{})
	years := make([]int, 0)
	seenYears := make(map[int]struct{})
	bounds := Range{}
	hasBounds := false

	for _, movie := range movies {
		for _, name := range movie.Genres {
			normalized := NormalizeGenreName(name)
			if normalized == "" {
				continue
			}
			key := GenreKey(normalized)
			if _, ok := seenGenres[key]; !ok {
				seenGenres[key] = struct{}{}
				genres = append(genres, normalized)
			}
		}

		if _, ok := seenYears[movie.Year]; !ok {
			seenYears[movie.Year] = struct{}{}
			years = append(years, movie.Year)
		}

		minutes := movie.Duration.Minutes()
		if minutes <= 0 {
			continue
		}
		if !hasBounds {
			bounds = Range{Min: minutes, Max: minutes}
			hasBounds = true
			continue
		}
		bounds.Min = min(bounds.Min, minutes)
		bounds.Max = max(bounds.Max, minutes)
	}

	collate.New(locale).SortStrings(genres)
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	return OptionSets{Genres: genres, Years: years, Durations: bounds}
}

// ClampRange carries a duration selection over to a reloaded dataset.
// Without a selection the new bounds are used; otherwise both ends are moved
// inside the bounds so a still-valid choice survives the reload.
func ClampRange(selection *Range, bounds Range) Range {
	if selection == nil {
		return bounds
	}

	lower, upper := selection.Min, selection.Max
	if lower > upper {
		lower, upper = upper, lower
	}
	return Range{
		Min: clamp(lower, bounds.Min, bounds.Max),
		Max: clamp(upper, bounds.Min, bounds.Max),
	}
}

func clamp(value, lower, upper int) int {
	return min(max(value, lower), upper)
}
