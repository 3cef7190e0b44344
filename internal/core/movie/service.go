// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/constants"
	"github.com/taibuivan/directorscut/pkg/pagination"
)

// # Service Layer

// Service orchestrates catalog reads and movie mutations.
//
// Reads go through a throttled snapshot of the full movie list; the query
// engine runs in memory over it. Writes are prepared by the admin workflow,
// sent to the repository once, and refresh the snapshot on success.
type Service struct {
	repository Repository
	snapshot   *catalog.Snapshot[catalog.Movie]
	workflow   *admin.Workflow
	logger     *slog.Logger

	viewTimeout time.Duration
	views       sync.WaitGroup
}

// NewService constructs a movie [Service]. cooldown is the minimum spacing
// between two full-list fetches.
func NewService(repository Repository, cooldown time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		snapshot:    catalog.NewSnapshot(repository.ListAll, cooldown),
		workflow:    admin.NewWorkflow(),
		logger:      logger,
		viewTimeout: constants.ViewIncrementTimeout,
	}
}

// # Catalog Reads

/*
Catalog runs the query engine over the current movie list.

Description: The requested page is clamped into [1, totalPages] of the
filtered result before pagination, so a stale page number after a filter
change lands on the last page instead of an empty grid.

Parameters:
  - context: context.Context
  - state: catalog.FilterState

Returns:
  - catalog.View: Page items, featured section and option sets
  - error: Storage failures
*/
func (service *Service) Catalog(context context.Context, state catalog.FilterState) (catalog.View, error) {
	movies, err := service.snapshot.Load(context)
	if err != nil {
		return catalog.View{}, err
	}

	total := len(catalog.Filter(movies, state))
	state.Page = pagination.ClampPage(state.Page, pagination.TotalPages(total, catalog.PageSize))

	return catalog.Query(movies, state), nil
}

// Options returns the filter option sets of the current movie list.
func (service *Service) Options(context context.Context) (catalog.OptionSets, error) {
	movies, err := service.snapshot.Load(context)
	if err != nil {
		return catalog.OptionSets{}, err
	}
	return catalog.DeriveOptionSets(movies), nil
}

// GetMovie fetches one movie straight from the store.
func (service *Service) GetMovie(context context.Context, id string) (*catalog.Movie, error) {
	return service.repository.FindByID(context, id)
}

// TrackView increments the view counter of id without blocking the caller.
// The update is detached from the request, bounded by its own timeout, and a
// failure is only logged.
func (service *Service) TrackView(ctx context.Context, id string) {
	service.views.Add(1)

	go func() {
		defer service.views.Done()

		detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), service.viewTimeout)
		defer cancel()

		if err := service.repository.IncrementViews(detached, id); err != nil {
			service.logger.Warn("views_increment_failed",
				slog.String("movie_id", id),
				slog.Any("error", err),
			)
		}
	}()
}

// WaitViews blocks until every pending view increment has finished.
func (service *Service) WaitViews() {
	service.views.Wait()
}

// Capabilities reports what actor may do with the movie id.
func (service *Service) Capabilities(context context.Context, actor admin.Actor, id string) (admin.Capabilities, error) {
	movie, err := service.repository.FindByID(context, id)
	if err != nil {
		return admin.Capabilities{}, err
	}
	return admin.CapabilitiesOf(actor, *movie), nil
}

// AdminList returns the movies shown on the admin dashboard: the whole
// catalog for admins and the master, the actor's own movies otherwise.
func (service *Service) AdminList(context context.Context, actor admin.Actor) ([]catalog.Movie, error) {
	if actor.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}
	if actor.Role.IsPrivileged() {
		return service.snapshot.Load(context)
	}
	return service.repository.ListByCreator(context, actor.ID)
}

// # Movie Management

/*
CreateMovie validates and stores a new movie.

Parameters:
  - context: context.Context
  - actor: admin.Actor (the logged-in user)
  - input: admin.MovieInput

Returns:
  - *catalog.Movie: The stored movie
  - error: Validation, quota, authorization or storage failures
*/
func (service *Service) CreateMovie(context context.Context, actor admin.Actor, input admin.MovieInput) (*catalog.Movie, error) {
	movies, err := service.snapshot.Load(context)
	if err != nil {
		return nil, err
	}

	write, err := service.workflow.PrepareCreate(actor, input, movies)
	if err != nil {
		return nil, err
	}

	movie, err := service.repository.Create(context, write)
	if err != nil {
		return nil, err
	}

	service.logger.Info("movie_created",
		slog.String("movie_id", movie.ID),
		slog.String("title", movie.Title),
		slog.String("actor_id", actor.ID),
	)

	service.refresh(context)
	return movie, nil
}

// UpdateMovie validates and applies an edit of the movie id.
func (service *Service) UpdateMovie(context context.Context, actor admin.Actor, id string, input admin.MovieInput) (*catalog.Movie, error) {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	movies, err := service.snapshot.Load(context)
	if err != nil {
		return nil, err
	}

	write, err := service.workflow.PrepareUpdate(actor, *existing, input, movies)
	if err != nil {
		return nil, err
	}

	movie, err := service.repository.Update(context, id, write)
	if err != nil {
		return nil, err
	}

	service.logger.Info("movie_updated",
		slog.String("movie_id", id),
		slog.String("actor_id", actor.ID),
	)

	service.refresh(context)
	return movie, nil
}

// DeleteMovie removes the movie id.
func (service *Service) DeleteMovie(context context.Context, actor admin.Actor, id string) error {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.workflow.PrepareDelete(actor, *existing); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("movie_deleted",
		slog.String("movie_id", id),
		slog.String("actor_id", actor.ID),
	)

	service.refresh(context)
	return nil
}

// SetFeatured turns the featured flag of the movie id on or off.
func (service *Service) SetFeatured(context context.Context, actor admin.Actor, id string, featured bool) (*catalog.Movie, error) {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	movies, err := service.snapshot.Load(context)
	if err != nil {
		return nil, err
	}

	if err := service.workflow.PrepareToggleFeatured(actor, *existing, featured, movies); err != nil {
		return nil, err
	}

	movie, err := service.repository.SetFeatured(context, id, featured)
	if err != nil {
		return nil, err
	}

	service.logger.Info("movie_featured_changed",
		slog.String("movie_id", id),
		slog.Bool("featured", featured),
		slog.String("actor_id", actor.ID),
	)

	service.refresh(context)
	return movie, nil
}

// refresh re-fetches the full list after a successful write. The write has
// already happened, so a failed refresh is logged and not returned.
func (service *Service) refresh(context context.Context) {
	if _, err := service.snapshot.Refresh(context); err != nil {
		service.logger.Warn("movies_refresh_failed", slog.Any("error", err))
	}
}
