// Copyright (c) 2026 Critica. All rights reserved.

package genre

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critica-app/critica/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL-backed genre repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns a page of genres matching the optional name search, with the
// total count from a window function (no second query).
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]Genre, int, error) {
	const query = `
		SELECT id, name, slug,
		       COUNT(*) OVER() AS total_count
		FROM genre
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Genre")
	}
	defer rows.Close()

	genres := []Genre{}
	totalCount := 0

	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "Genre")
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Genre")
	}

	return genres, totalCount, nil
}

// Create inserts the genre, populating its generated ID.
func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	const query = `
		INSERT INTO genre (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	err := repository.pool.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	return dberr.Wrap(err, "Genre")
}

// DeleteBySlug removes the genre; zero affected rows means it never existed.
func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	const query = `DELETE FROM genre WHERE slug = $1`

	cmd, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "Genre")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
