// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"

	"github.com/taibuivan/directorscut/internal/core/catalog"
)

// Repository is the data access contract of the managed genre list.
type Repository interface {
	List(context context.Context) ([]catalog.Genre, error)
	FindByID(context context.Context, id int) (*catalog.Genre, error)
	FindBySlug(context context.Context, slug string) (*catalog.Genre, error)
	Create(context context.Context, name, slug string) (*catalog.Genre, error)
	Update(context context.Context, id int, name, slug string) (*catalog.Genre, error)
	Delete(context context.Context, id int) error
}
