// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/pkg/pointer"
)

var starterGenres = []string{
	"Arthouse", "Crime", "Documentary", "Drama", "Experimental",
	"Horror", "Noir", "Romance", "Science Fiction", "Surreal",
}

type demoMovie struct {
	title    string
	director string
	year     int
	duration string
	genres   string
	synopsis string
	featured bool
}

var demoCatalog = []demoMovie{
	{"Eraserhead", "David Lynch", 1977, "01:29", "Surreal, Horror, Experimental",
		"A factory worker drifts through an industrial nightmare after becoming a father.", true},
	{"Stalker", "Andrei Tarkovsky", 1979, "02:42", "Science Fiction, Drama",
		"A guide leads two men through the Zone toward a room said to grant wishes.", true},
	{"Jeanne Dielman, 23 quai du Commerce, 1080 Bruxelles", "Chantal Akerman", 1975, "03:21", "Drama, Arthouse",
		"Three days in the meticulously ordered life of a widowed mother.", true},
	{"In the Mood for Love", "Wong Kar-wai", 2000, "01:38", "Romance, Drama",
		"Two neighbours suspect their spouses of an affair and slowly fall for each other.", false},
	{"La Jetée", "Chris Marker", 1962, "00:28", "Science Fiction, Experimental",
		"A post-war experiment in time travel told almost entirely in still photographs.", false},
	{"Sans Soleil", "Chris Marker", 1983, "01:40", "Documentary, Experimental",
		"Letters from a cameraman travelling between Japan, Guinea-Bissau and memory.", false},
	{"The Third Man", "Carol Reed", 1949, "01:44", "Noir, Crime",
		"A pulp writer searches post-war Vienna for the truth about his friend's death.", false},
	{"Holy Motors", "Leos Carax", 2012, "01:55", "Arthouse, Surreal",
		"One day in the life of a man who lives a dozen lives across Paris.", false},
	{"Cléo from 5 to 7", "Agnès Varda", 1962, "01:30", "Drama, Arthouse",
		"A singer wanders Paris for two hours while waiting for a medical diagnosis.", false},
	{"Wanda", "Barbara Loden", 1970, "01:42", "Drama, Crime",
		"A woman adrift in Pennsylvania falls in with a small-time bank robber.", false},
}

func demoMovies(createdBy string) []admin.MovieWrite {
	writes := make([]admin.MovieWrite, 0, len(demoCatalog))
	for _, demo := range demoCatalog {
		writes = append(writes, admin.MovieWrite{
			Title:     demo.title,
			Director:  demo.director,
			Year:      demo.year,
			Duration:  catalog.Duration(catalog.ParseDurationMinutes(demo.duration)),
			Genres:    catalog.ParseGenreList(demo.genres),
			Synopsis:  pointer.To(demo.synopsis),
			Featured:  demo.featured,
			CreatedBy: pointer.To(createdBy),
		})
	}
	return writes
}

// generatedMovies returns n random, never featured movies.
func generatedMovies(n int, createdBy string) []admin.MovieWrite {
	writes := make([]admin.MovieWrite, 0, n)
	for range n {
		genres := []string{
			gofakeit.RandomString(starterGenres),
			gofakeit.RandomString(starterGenres),
		}
		writes = append(writes, admin.MovieWrite{
			Title:     gofakeit.MovieName(),
			Director:  gofakeit.Name(),
			Year:      gofakeit.IntRange(admin.MinYear, 2025),
			Duration:  catalog.Duration(gofakeit.IntRange(70, 200)),
			Genres:    catalog.NewGenreList(genres),
			Synopsis:  pointer.To(gofakeit.Sentence(18)),
			CreatedBy: pointer.To(createdBy),
		})
	}
	return writes
}
