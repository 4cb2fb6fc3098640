// Copyright (c) 2026 Critica. All rights reserved.

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critica-app/critica/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]Category, int, error) {
	const query = `
		SELECT id, name, slug,
		       COUNT(*) OVER() AS total_count
		FROM category
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	categories := []Category{}
	totalCount := 0

	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "Category")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}

	return categories, totalCount, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO category (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	err := repository.pool.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	return dberr.Wrap(err, "Category")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	const query = `DELETE FROM category WHERE slug = $1`

	cmd, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
