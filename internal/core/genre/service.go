// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre manages the curated genre list offered by the movie form.

Only the master account edits the list. Names are normalized and compared
ignoring case and spacing, so "sci-fi" and "Sci-Fi" are the same genre.
Deleting a genre never touches movies: the public filter options are derived
from the genres movies use, not from this list.
*/
package genre

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/pkg/slug"
)

type Service struct {
	repo     Repository
	snapshot *catalog.Snapshot[catalog.Genre]
	logger   *slog.Logger
}

// NewService constructs the genre service. cooldown spaces full-list fetches.
func NewService(repo Repository, cooldown time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		snapshot: catalog.NewSnapshot(repo.List, cooldown),
		logger:   logger,
	}
}

func (service *Service) ListGenres(context context.Context) ([]catalog.Genre, error) {
	return service.snapshot.Load(context)
}

func (service *Service) GetGenre(context context.Context, id int) (*catalog.Genre, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) GetGenreBySlug(context context.Context, slug string) (*catalog.Genre, error) {
	return service.repo.FindBySlug(context, slug)
}

// CreateGenre adds a genre after the duplicate check against the current list.
func (service *Service) CreateGenre(context context.Context, actor admin.Actor, raw string) (*catalog.Genre, error) {
	existing, err := service.snapshot.Load(context)
	if err != nil {
		return nil, err
	}

	name, err := admin.PrepareGenreName(actor, raw, existing, 0)
	if err != nil {
		return nil, err
	}

	genre, err := service.repo.Create(context, name, slug.From(name))
	if err != nil {
		return nil, err
	}

	service.logger.Info("genre_created",
		slog.Int("genre_id", genre.ID),
		slog.String("name", genre.Name),
	)

	service.refresh(context)
	return genre, nil
}

// RenameGenre changes the name and slug of genre id.
func (service *Service) RenameGenre(context context.Context, actor admin.Actor, id int, raw string) (*catalog.Genre, error) {
	existing, err := service.snapshot.Load(context)
	if err != nil {
		return nil, err
	}

	name, err := admin.PrepareGenreName(actor, raw, existing, id)
	if err != nil {
		return nil, err
	}

	genre, err := service.repo.Update(context, id, name, slug.From(name))
	if err != nil {
		return nil, err
	}

	service.logger.Info("genre_renamed",
		slog.Int("genre_id", id),
		slog.String("name", genre.Name),
	)

	service.refresh(context)
	return genre, nil
}

func (service *Service) DeleteGenre(context context.Context, actor admin.Actor, id int) error {
	if err := admin.PrepareGenreDelete(actor); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.Int("genre_id", id))

	service.refresh(context)
	return nil
}

func (service *Service) refresh(context context.Context) {
	if _, err := service.snapshot.Refresh(context); err != nil {
		service.logger.Warn("genres_refresh_failed", slog.Any("error", err))
	}
}
