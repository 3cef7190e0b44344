// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreMovieTable represents the 'core.movie' table
type CoreMovieTable struct {
	Table           string
	ID              string
	Title           string
	Director        string
	Year            string
	DurationMinutes string
	Genre           string
	Thumbnail       string
	VideoURL        string
	Synopsis        string
	Views           string
	Featured        string
	CreatedBy       string
	CreatedAt       string
	UpdatedAt       string
}

// CoreMovie is the schema definition for core.movie
var CoreMovie = CoreMovieTable{
	Table:           "core.movie",
	ID:              "id",
	Title:           "title",
	Director:        "director",
	Year:            "year",
	DurationMinutes: "durationminutes",
	Genre:           "genre", // comma-joined names
	Thumbnail:       "thumbnail",
	VideoURL:        "videourl",
	Synopsis:        "synopsis",
	Views:           "views",
	Featured:        "featured",
	CreatedBy:       "createdby",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names, in scan order
func (t CoreMovieTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Director, t.Year, t.DurationMinutes, t.Genre, t.Thumbnail,
		t.VideoURL, t.Synopsis, t.Views, t.Featured, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
