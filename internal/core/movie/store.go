// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
)

// # Movie Data Access

// Repository defines the data access contract for the movie domain.
type Repository interface {

	/*
		ListAll returns every movie, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []catalog.Movie: The complete catalog
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context) ([]catalog.Movie, error)

	// ListByCreator returns the movies created by userID, newest first.
	ListByCreator(context context.Context, userID string) ([]catalog.Movie, error)

	/*
		FindByID returns the movie with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *catalog.Movie: The hydrated domain entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*catalog.Movie, error)

	/*
		Create persists a prepared movie and returns the stored row.

		Implementations must re-check the featured cap atomically when
		write.Featured is set and fail with apperr.QuotaExceeded.
	*/
	Create(context context.Context, write admin.MovieWrite) (*catalog.Movie, error)

	// Update overwrites the mutable fields of id, with the same featured cap
	// guarantee as Create.
	Update(context context.Context, id string, write admin.MovieWrite) (*catalog.Movie, error)

	// Delete removes the movie row.
	Delete(context context.Context, id string) error

	// SetFeatured flips the featured flag of id under the featured cap.
	SetFeatured(context context.Context, id string, featured bool) (*catalog.Movie, error)

	// IncrementViews atomically adds one to the view counter.
	IncrementViews(context context.Context, id string) error
}
