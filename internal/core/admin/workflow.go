// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"time"

	"github.com/taibuivan/directorscut/internal/core/catalog"
)

// MovieWrite is a validated, normalized movie payload ready for storage.
type MovieWrite struct {
	Title     string
	Director  string
	Year      int
	Duration  catalog.Duration
	Genres    catalog.GenreList
	Thumbnail *string
	VideoURL  *string
	Synopsis  *string
	Featured  bool
	CreatedBy *string
}

// Workflow prepares movie mutations.
type Workflow struct {
	now func() time.Time
}

// NewWorkflow returns a workflow using the wall clock for the year bound.
func NewWorkflow() *Workflow {
	return &Workflow{now: time.Now}
}

// WithClock replaces the time source.
func (w *Workflow) WithClock(now func() time.Time) *Workflow {
	w.now = now
	return w
}

// # Create

// PrepareCreate validates a new movie. movies is the current snapshot used by
// the featured quota. Non-privileged actors can never create a featured movie.
func (w *Workflow) PrepareCreate(actor Actor, input MovieInput, movies []catalog.Movie) (MovieWrite, error) {
	if actor.IsAnonymous() {
		return MovieWrite{}, Can(ActionCreate, actor, nil).Err()
	}

	// 1. Structural validation
	input = input.Normalized()
	if err := input.Validate(w.now()); err != nil {
		return MovieWrite{}, err
	}

	featured := input.Featured && actor.Role.IsPrivileged()

	// 2. Featured quota
	if err := CheckFeaturedQuota(movies, actor, nil, featured); err != nil {
		return MovieWrite{}, err
	}

	// 3. Authorization re-check
	if err := Can(ActionCreate, actor, nil).Err(); err != nil {
		return MovieWrite{}, err
	}

	createdBy := actor.ID
	return toWrite(input, featured, &createdBy), nil
}

// # Update

// PrepareUpdate validates an edit of existing.
//
// A movie in the [StateNotEditable] state admits no edit at all, whatever the
// payload. A non-privileged creator keeps the stored featured value. The
// creator of the movie is never reassigned.
func (w *Workflow) PrepareUpdate(actor Actor, existing catalog.Movie, input MovieInput, movies []catalog.Movie) (MovieWrite, error) {
	if StateOf(actor, existing) != StateEditable {
		return MovieWrite{}, Can(ActionEdit, actor, &existing).Err()
	}

	// 1. Structural validation
	input = input.Normalized()
	if err := input.Validate(w.now()); err != nil {
		return MovieWrite{}, err
	}

	featured := existing.Featured
	if actor.Role.IsPrivileged() {
		featured = input.Featured
	}

	// 2. Featured quota
	if err := CheckFeaturedQuota(movies, actor, &existing, featured); err != nil {
		return MovieWrite{}, err
	}

	// 3. Authorization re-check
	if err := Can(ActionEdit, actor, &existing).Err(); err != nil {
		return MovieWrite{}, err
	}

	return toWrite(input, featured, existing.CreatedBy), nil
}

// # Delete & Feature

// PrepareDelete authorizes removing existing.
func (w *Workflow) PrepareDelete(actor Actor, existing catalog.Movie) error {
	return Can(ActionDelete, actor, &existing).Err()
}

// PrepareToggleFeatured authorizes setting the featured flag of existing and
// checks the quota when the flag is being turned on.
func (w *Workflow) PrepareToggleFeatured(actor Actor, existing catalog.Movie, featured bool, movies []catalog.Movie) error {
	if err := Can(ActionToggleFeatured, actor, &existing).Err(); err != nil {
		return err
	}
	return CheckFeaturedQuota(movies, actor, &existing, featured)
}

func toWrite(input MovieInput, featured bool, createdBy *string) MovieWrite {
	return MovieWrite{
		Title:     input.Title,
		Director:  input.Director,
		Year:      input.Year,
		Duration:  input.Duration,
		Genres:    input.Genres,
		Thumbnail: input.Thumbnail,
		VideoURL:  input.VideoURL,
		Synopsis:  input.Synopsis,
		Featured:  featured,
		CreatedBy: createdBy,
	}
}
