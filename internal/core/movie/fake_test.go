// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/pkg/uuid"
)

// memoryRepository is an in-memory movie store with the same featured cap
// guarantee as the PostgreSQL one.
type memoryRepository struct {
	mu     sync.Mutex
	movies []catalog.Movie

	listCalls int
	writes    int
	viewErr   error
	views     map[string]int
}

func newMemoryRepository(movies ...catalog.Movie) *memoryRepository {
	return &memoryRepository{movies: movies, views: make(map[string]int)}
}

func (r *memoryRepository) ListAll(context.Context) ([]catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	return append([]catalog.Movie(nil), r.movies...), nil
}

func (r *memoryRepository) ListByCreator(_ context.Context, userID string) ([]catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]catalog.Movie, 0)
	for _, movie := range r.movies {
		if movie.IsOwnedBy(userID) {
			owned = append(owned, movie)
		}
	}
	return owned, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return nil, apperr.NotFound("Movie")
	}
	movie := r.movies[index]
	return &movie, nil
}

func (r *memoryRepository) Create(_ context.Context, write admin.MovieWrite) (*catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkCap(write.Featured, ""); err != nil {
		return nil, err
	}

	r.writes++
	movie := fromWrite(uuid.New(), write)
	movie.CreatedAt = time.Now()
	r.movies = append([]catalog.Movie{movie}, r.movies...)
	return &movie, nil
}

func (r *memoryRepository) Update(_ context.Context, id string, write admin.MovieWrite) (*catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return nil, apperr.NotFound("Movie")
	}
	if err := r.checkCap(write.Featured, id); err != nil {
		return nil, err
	}

	r.writes++
	movie := fromWrite(id, write)
	movie.Views = r.movies[index].Views
	movie.CreatedAt = r.movies[index].CreatedAt
	r.movies[index] = movie
	return &movie, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return apperr.NotFound("Movie")
	}
	r.writes++
	r.movies = append(r.movies[:index], r.movies[index+1:]...)
	return nil
}

func (r *memoryRepository) SetFeatured(_ context.Context, id string, featured bool) (*catalog.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return nil, apperr.NotFound("Movie")
	}
	if err := r.checkCap(featured, id); err != nil {
		return nil, err
	}

	r.writes++
	r.movies[index].Featured = featured
	movie := r.movies[index]
	return &movie, nil
}

func (r *memoryRepository) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.viewErr != nil {
		return r.viewErr
	}
	r.views[id]++
	return nil
}

func (r *memoryRepository) viewCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[id]
}

func (r *memoryRepository) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *memoryRepository) indexOf(id string) int {
	for i, movie := range r.movies {
		if movie.ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryRepository) checkCap(featured bool, excludeID string) error {
	if featured && catalog.CountFeatured(r.movies, excludeID) >= catalog.FeaturedLimit {
		return apperr.QuotaExceeded(catalog.FeaturedLimit)
	}
	return nil
}

func fromWrite(id string, write admin.MovieWrite) catalog.Movie {
	return catalog.Movie{
		ID:        id,
		Title:     write.Title,
		Director:  write.Director,
		Year:      write.Year,
		Duration:  write.Duration,
		Genres:    write.Genres,
		Thumbnail: write.Thumbnail,
		VideoURL:  write.VideoURL,
		Synopsis:  write.Synopsis,
		Featured:  write.Featured,
		CreatedBy: write.CreatedBy,
	}
}

// # Fixtures

const (
	ownerID    = "0190f5a2-0000-7000-8000-000000000001"
	strangerID = "0190f5a2-0000-7000-8000-000000000002"
	adminID    = "0190f5a2-0000-7000-8000-000000000003"
)

// seedMovies returns n movies owned by ownerID; the first featured are flagged.
func seedMovies(n, featured int) []catalog.Movie {
	owner := ownerID
	movies := make([]catalog.Movie, n)
	for i := range movies {
		movies[i] = catalog.Movie{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Movie %02d", i+1),
			Director:  "Agnès Varda",
			Year:      1960 + i,
			Duration:  catalog.Duration(90 + i),
			Genres:    catalog.GenreList{"Drama"},
			Featured:  i < featured,
			CreatedBy: &owner,
		}
	}
	return movies
}

func validInput(title string) admin.MovieInput {
	return admin.MovieInput{
		Title:    title,
		Director: "Chantal Akerman",
		Year:     1975,
		Duration: catalog.Duration(201),
		Genres:   catalog.GenreList{"drama", "slow cinema"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
