// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"github.com/taibuivan/directorscut/pkg/pagination"
	"github.com/taibuivan/directorscut/pkg/slice"
)

// # Pagination

// Paginate returns page (1-indexed) of filtered and the total page count,
// ceil(len(filtered) / pageSize), zero for an empty list.
//
// The page is not clamped. Keeping it in [1, totalPages] is the caller's job;
// a page outside that interval yields no items.
func Paginate(filtered []Movie, page, pageSize int) ([]Movie, int) {
	totalPages := pagination.TotalPages(len(filtered), pageSize)
	if page < 1 || page > totalPages {
		return []Movie{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(filtered))
	return filtered[start:end], totalPages
}

// # Featured Section

// SelectFeatured returns up to [FeaturedLimit] featured movies, in list order,
// when no filter narrows the catalog. Selected movies stay in the main grid too.
func SelectFeatured(movies []Movie, state FilterState, bounds Range) []Movie {
	featured := make([]Movie, 0, FeaturedLimit)
	if state.IsActive(bounds) {
		return featured
	}

	for _, movie := range movies {
		if len(featured) == FeaturedLimit {
			break
		}
		if movie.Featured {
			featured = append(featured, movie)
		}
	}
	return featured
}

// CountFeatured counts featured movies, skipping excludeID.
func CountFeatured(movies []Movie, excludeID string) int {
	return slice.Count(movies, func(movie Movie) bool {
		return movie.Featured && movie.ID != excludeID
	})
}

// # View Model

// View is everything a catalog page renders.
type View struct {
	Items      []Movie    `json:"items"`
	Featured   []Movie    `json:"featured"`
	Options    OptionSets `json:"options"`
	Selected   Range      `json:"selected_duration"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
}

// Query runs the whole engine over a dataset: option sets, filtering,
// pagination of state.Page and the featured section.
//
// Selected is the duration selection clamped into the current bounds, the
// value the filter control should show after a reload. Filtering itself uses
// the selection as given.
func Query(movies []Movie, state FilterState) View {
	options := DeriveOptionSets(movies)
	filtered := Filter(movies, state)
	items, totalPages := Paginate(filtered, state.Page, PageSize)

	return View{
		Items:      items,
		Featured:   SelectFeatured(movies, state, options.Durations),
		Options:    options,
		Selected:   ClampRange(state.Duration, options.Durations),
		Page:       state.Page,
		PageSize:   PageSize,
		Total:      len(filtered),
		TotalPages: totalPages,
	}
}
