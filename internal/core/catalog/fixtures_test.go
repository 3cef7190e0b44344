// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/pkg/pointer"
)

// cultClassics is the two-movie dataset used by the filtering scenarios.
func cultClassics() []catalog.Movie {
	return []catalog.Movie{
		{
			ID:       "eraserhead",
			Title:    "Eraserhead",
			Director: "David Lynch",
			Year:     1977,
			Duration: catalog.Duration(catalog.ParseDurationMinutes("01:29")),
			Genres:   catalog.ParseGenreList("Surreal Horror, Experimental"),
			Synopsis: pointer.To("Henry Spencer tries to survive his industrial environment."),
			Featured: true,
		},
		{
			ID:       "holy-motors",
			Title:    "Holy Motors",
			Director: "Leos Carax",
			Year:     2012,
			Duration: catalog.Duration(catalog.ParseDurationMinutes("01:55")),
			Genres:   catalog.ParseGenreList("Arthouse"),
			Featured: false,
		},
	}
}

var fakeGenres = []string{"Drama", "Horror", "Experimental", "Film-Noir", "Arthouse", "Science Fiction"}

// fakeCatalog generates n movies deterministically from seed.
func fakeCatalog(seed int64, n int) []catalog.Movie {
	faker := gofakeit.New(seed)
	movies := make([]catalog.Movie, n)
	for i := range movies {
		movies[i] = catalog.Movie{
			ID:       faker.UUID(),
			Title:    faker.Sentence(3),
			Director: faker.Name(),
			Year:     faker.Number(1895, 2026),
			Duration: catalog.Duration(faker.Number(60, 240)),
			Genres: catalog.NewGenreList([]string{
				faker.RandomString(fakeGenres),
				faker.RandomString(fakeGenres),
			}),
			Featured: faker.Bool(),
		}
	}
	return movies
}

func ids(movies []catalog.Movie) []string {
	out := make([]string, len(movies))
	for i, movie := range movies {
		out[i] = movie.ID
	}
	return out
}
