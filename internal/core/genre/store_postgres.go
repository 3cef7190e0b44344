// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/database/schema"
	"github.com/taibuivan/directorscut/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join(schema.CoreGenre.Columns(), ", ")

func (repository *PostgresRepository) List(context context.Context) ([]catalog.Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns, schema.CoreGenre.Table, schema.CoreGenre.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]catalog.Genre, 0)
	for rows.Next() {
		var g catalog.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}

	return genres, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*catalog.Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreGenre.Table, schema.CoreGenre.ID)

	return scanGenre(repository.db.QueryRow(context, query, id), "get_genre_by_id")
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*catalog.Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreGenre.Table, schema.CoreGenre.Slug)

	return scanGenre(repository.db.QueryRow(context, query, slug), "get_genre_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, name, slug string) (*catalog.Genre, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug, selectColumns)

	genre, err := scanGenre(repository.db.QueryRow(context, query, name, slug), "create_genre")
	return genre, duplicateGenre(err, name, slug)
}

func (repository *PostgresRepository) Update(context context.Context, id int, name, slug string) (*catalog.Genre, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 RETURNING %s`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.ID, selectColumns)

	genre, err := scanGenre(repository.db.QueryRow(context, query, id, name, slug), "update_genre")
	return genre, duplicateGenre(err, name, slug)
}

// Delete removes the genre row only. Movies keep the name in their own
// genre column.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreGenre.Table, schema.CoreGenre.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}

func scanGenre(row pgx.Row, action string) (*catalog.Genre, error) {
	g := &catalog.Genre{}
	err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Genre")
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return g, nil
}

// genreNameIndex is the case-insensitive unique index on core.genre names. The
// other unique constraint on the table is the slug column.
const genreNameIndex = "genre_name_key"

// duplicateGenre turns a lost race on either unique index into the same
// error the service reports for a known duplicate.
func duplicateGenre(err error, name, slug string) error {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgerrcode.UniqueViolation {
		return err
	}
	if pgError.ConstraintName == genreNameIndex {
		return apperr.DuplicateGenre(name).WithCause(err)
	}
	return apperr.GenreSlugTaken(slug).WithCause(err)
}
