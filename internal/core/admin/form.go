// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/validate"
	"github.com/taibuivan/directorscut/pkg/pointer"
)

// # Bounds

const (
	MaxTitleLength    = 200
	MaxDirectorLength = 100
	MaxSynopsisLength = 2000
	MinYear           = 1895 // first public film screening
	MaxGenresPerMovie = 10
)

// MovieInput is the movie form as submitted by a client.
type MovieInput struct {
	Title     string            `json:"title"`
	Director  string            `json:"director"`
	Year      int               `json:"year"`
	Duration  catalog.Duration  `json:"duration"`
	Genres    catalog.GenreList `json:"genres"`
	Thumbnail *string           `json:"thumbnail"`
	VideoURL  *string           `json:"video_url"`
	Synopsis  *string           `json:"synopsis"`
	Featured  bool              `json:"featured"`
}

// Normalized trims text, normalizes genres and turns blank optional fields
// into nil.
func (in MovieInput) Normalized() MovieInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Director = strings.TrimSpace(in.Director)
	in.Genres = catalog.NewGenreList(in.Genres)
	in.Thumbnail = pointer.NilIfBlank(in.Thumbnail)
	in.VideoURL = pointer.NilIfBlank(in.VideoURL)
	in.Synopsis = pointer.NilIfBlank(in.Synopsis)
	return in
}

// Validate checks the bounds of a movie and reports only the first violated
// field, in form order. now fixes the upper year bound (current year + 2).
func (in MovieInput) Validate(now time.Time) error {
	v := &validate.Validator{}

	v.Required(catalog.FieldTitle, in.Title).
		MaxLen(catalog.FieldTitle, in.Title, MaxTitleLength).
		Required(catalog.FieldDirector, in.Director).
		MaxLen(catalog.FieldDirector, in.Director, MaxDirectorLength).
		Range(catalog.FieldYear, in.Year, MinYear, now.Year()+2).
		Custom(catalog.FieldDuration, in.Duration.Minutes() <= 0, "Duration is required (HH:MM)").
		Custom(catalog.FieldDuration, in.Duration.Minutes() > catalog.MaxDurationMinutes,
			fmt.Sprintf("Duration must be at most %s", catalog.FormatDuration(catalog.MaxDurationMinutes))).
		Custom(catalog.FieldGenres, len(in.Genres) == 0, "Select at least one genre").
		Custom(catalog.FieldGenres, len(in.Genres) > MaxGenresPerMovie,
			fmt.Sprintf("Select at most %d genres", MaxGenresPerMovie)).
		MaxLen(catalog.FieldSynopsis, pointer.Val(in.Synopsis), MaxSynopsisLength).
		OptionalURL(catalog.FieldThumbnail, pointer.Val(in.Thumbnail)).
		OptionalURL(catalog.FieldVideoURL, pointer.Val(in.VideoURL))

	return v.FirstErr()
}
