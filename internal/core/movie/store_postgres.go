// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie provides storage, orchestration and the HTTP surface for the
movie catalog.

The PostgreSQL repository keeps the row shape simple: duration is stored as
integer minutes and genres as one comma-joined string, parsed back into a
[catalog.GenreList] on every read. Writes that may set the featured flag run
inside a transaction holding an advisory lock, so two concurrent requests can
never push the catalog over the featured cap.
*/
package movie

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/directorscut/internal/core/admin"
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/database/schema"
	"github.com/taibuivan/directorscut/internal/platform/dberr"
	"github.com/taibuivan/directorscut/pkg/uuid"
)

// featuredLockKey is the pg_advisory_xact_lock key serializing featured writes.
const featuredLockKey int64 = 0x4d4f564945 // "MOVIE"

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed movie store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// selectColumns is the column list of every movie read, in scan order.
var selectColumns = strings.Join(schema.CoreMovie.Columns(), ", ")

// # Reads

// ListAll returns every movie, newest first.
func (repository *PostgresRepository) ListAll(context context.Context) ([]catalog.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		selectColumns,
		schema.CoreMovie.Table,
		schema.CoreMovie.CreatedAt,
		schema.CoreMovie.ID,
	)

	movies, err := listMovies(context, repository.pool, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_movies")
	}
	return movies, nil
}

// ListByCreator returns the movies created by userID, newest first.
func (repository *PostgresRepository) ListByCreator(context context.Context, userID string) ([]catalog.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC`,
		selectColumns,
		schema.CoreMovie.Table,
		schema.CoreMovie.CreatedBy,
		schema.CoreMovie.CreatedAt,
		schema.CoreMovie.ID,
	)

	movies, err := listMovies(context, repository.pool, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_movies_by_creator")
	}
	return movies, nil
}

// FindByID retrieves a movie by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*catalog.Movie, error) {
	movie, err := findMovie(context, repository.pool, id)
	if err != nil {
		return nil, wrapRowError(err, "find_movie_by_id")
	}
	return movie, nil
}

// # Writes

/*
Create inserts a prepared movie.

Description: When the movie is to be featured the insert runs under the
featured advisory lock and recounts the featured rows first.

Parameters:
  - context: context.Context
  - write: admin.MovieWrite (validated payload)

Returns:
  - *catalog.Movie: The stored row
  - error: apperr.QuotaExceeded or a wrapped storage failure
*/
func (repository *PostgresRepository) Create(context context.Context, write admin.MovieWrite) (*catalog.Movie, error) {
	id := uuid.New()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`,
		schema.CoreMovie.Table,
		schema.CoreMovie.ID,
		schema.CoreMovie.Title,
		schema.CoreMovie.Director,
		schema.CoreMovie.Year,
		schema.CoreMovie.DurationMinutes,
		schema.CoreMovie.Genre,
		schema.CoreMovie.Thumbnail,
		schema.CoreMovie.VideoURL,
		schema.CoreMovie.Synopsis,
		schema.CoreMovie.Featured,
		schema.CoreMovie.CreatedBy,
		selectColumns,
	)

	var created *catalog.Movie
	err := repository.withFeaturedGuard(context, write.Featured, "", func(tx querier) error {
		movie, err := scanMovie(tx.QueryRow(context, query,
			id,
			write.Title,
			write.Director,
			write.Year,
			write.Duration.Minutes(),
			write.Genres.Join(),
			write.Thumbnail,
			write.VideoURL,
			write.Synopsis,
			write.Featured,
			write.CreatedBy,
		))
		created = movie
		return err
	})
	if err != nil {
		return nil, wrapRowError(err, "create_movie")
	}
	return created, nil
}

// Update overwrites every mutable column of id. The creator column is
// written from the prepared payload, which keeps the original creator.
func (repository *PostgresRepository) Update(context context.Context, id string, write admin.MovieWrite) (*catalog.Movie, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreMovie.Table,
		schema.CoreMovie.Title,
		schema.CoreMovie.Director,
		schema.CoreMovie.Year,
		schema.CoreMovie.DurationMinutes,
		schema.CoreMovie.Genre,
		schema.CoreMovie.Thumbnail,
		schema.CoreMovie.VideoURL,
		schema.CoreMovie.Synopsis,
		schema.CoreMovie.Featured,
		schema.CoreMovie.UpdatedAt,
		schema.CoreMovie.ID,
		selectColumns,
	)

	var updated *catalog.Movie
	err := repository.withFeaturedGuard(context, write.Featured, id, func(tx querier) error {
		movie, err := scanMovie(tx.QueryRow(context, query,
			id,
			write.Title,
			write.Director,
			write.Year,
			write.Duration.Minutes(),
			write.Genres.Join(),
			write.Thumbnail,
			write.VideoURL,
			write.Synopsis,
			write.Featured,
		))
		updated = movie
		return err
	})
	if err != nil {
		return nil, wrapRowError(err, "update_movie")
	}
	return updated, nil
}

// Delete removes the movie row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreMovie.Table, schema.CoreMovie.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_movie")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Movie")
	}
	return nil
}

// SetFeatured flips the featured flag of id under the featured cap.
func (repository *PostgresRepository) SetFeatured(context context.Context, id string, featured bool) (*catalog.Movie, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreMovie.Table,
		schema.CoreMovie.Featured,
		schema.CoreMovie.UpdatedAt,
		schema.CoreMovie.ID,
		selectColumns,
	)

	var updated *catalog.Movie
	err := repository.withFeaturedGuard(context, featured, id, func(tx querier) error {
		movie, err := scanMovie(tx.QueryRow(context, query, id, featured))
		updated = movie
		return err
	})
	if err != nil {
		return nil, wrapRowError(err, "set_movie_featured")
	}
	return updated, nil
}

// IncrementViews atomically adds one to the view counter.
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.CoreMovie.Table,
		schema.CoreMovie.Views,
		schema.CoreMovie.Views,
		schema.CoreMovie.ID,
	)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "increment_movie_views")
	}
	return nil
}

// # Featured Guard

// withFeaturedGuard runs write directly when featured is false. Otherwise it
// runs write in a transaction that first takes the featured advisory lock and
// counts the other featured movies, failing with QuotaExceeded at the cap.
// excludeID is the movie being written; a movie already featured never
// counts against itself.
func (repository *PostgresRepository) withFeaturedGuard(context context.Context, featured bool, excludeID string, write func(tx querier) error) error {
	if !featured {
		return write(repository.pool)
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return err
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context, `SELECT pg_advisory_xact_lock($1)`, featuredLockKey); err != nil {
		return err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s AND %s::text <> $1`,
		schema.CoreMovie.Table,
		schema.CoreMovie.Featured,
		schema.CoreMovie.ID,
	)

	var count int
	if err := transaction.QueryRow(context, countQuery, excludeID).Scan(&count); err != nil {
		return err
	}
	if count >= catalog.FeaturedLimit {
		return apperr.QuotaExceeded(catalog.FeaturedLimit)
	}

	if err := write(transaction); err != nil {
		return err
	}
	return transaction.Commit(context)
}

// # Scanning

func listMovies(context context.Context, db querier, query string, args ...any) ([]catalog.Movie, error) {
	rows, err := db.Query(context, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]catalog.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}
	return movies, rows.Err()
}

func findMovie(context context.Context, db querier, id string) (*catalog.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns,
		schema.CoreMovie.Table,
		schema.CoreMovie.ID,
	)
	return scanMovie(db.QueryRow(context, query, id))
}

// scanMovie reads one row laid out as [schema.CoreMovieTable.Columns].
func scanMovie(row pgx.Row) (*catalog.Movie, error) {
	var (
		movie    catalog.Movie
		minutes  int
		genreCSV string
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.Year,
		&minutes,
		&genreCSV,
		&movie.Thumbnail,
		&movie.VideoURL,
		&movie.Synopsis,
		&movie.Views,
		&movie.Featured,
		&movie.CreatedBy,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	movie.Duration = catalog.Duration(minutes)
	movie.Genres = catalog.ParseGenreList(genreCSV)
	return &movie, nil
}

// wrapRowError names the missing resource instead of the generic one.
func wrapRowError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Movie")
	}
	return dberr.Wrap(err, action)
}
