// Copyright (c) 2026 Critica. All rights reserved.

/*
Package title (Postgres) implements the catalog storage layer.

# Query Shape

The read queries assemble the full nested shape in one round-trip:
  - Window Function: COUNT(*) OVER() carries the total match count.
  - JSON Aggregation: A sub-query folds the linked genres into a JSON array,
    avoiding N+1 lookups.
  - Derived Rating: A sub-query averages review scores, rounded to one
    decimal, NULL while no reviews exist.
*/
package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critica-app/critica/internal/core/category"
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

const titleReadColumns = `
	t.id, t.name, t.year, t.description,
	(SELECT ROUND(AVG(r.score)::numeric, 1)::float8
	 FROM review r WHERE r.title_id = t.id) AS rating,
	c.name, c.slug,
	COALESCE((
		SELECT json_agg(json_build_object('name', g.name, 'slug', g.slug) ORDER BY g.name)
		FROM genre g
		JOIN genre_title gt ON g.id = gt.genre_id
		WHERE gt.title_id = t.id
	), '[]') AS genres`

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]Title, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + titleReadColumns + `,
		       COUNT(*) OVER() AS total_count
		FROM title t
		LEFT JOIN category c ON c.id = t.category_id
		WHERE TRUE`)

	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.slug = $%d", argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	if filter.GenreSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM genre_title gt
			JOIN genre g ON g.id = gt.genre_id
			WHERE gt.title_id = t.id AND g.slug = $%d)`, argID))
		args = append(args, filter.GenreSlug)
		argID++
	}

	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.name ILIKE '%%' || $%d || '%%'", argID))
		args = append(args, filter.Name)
		argID++
	}

	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.year = $%d", argID))
		args = append(args, *filter.Year)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY t.name, t.id")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Title")
	}
	defer rows.Close()

	titles := []Title{}
	totalCount := 0

	for rows.Next() {
		title, err := scanTitle(rows.Scan, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Title")
		}
		titles = append(titles, *title)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Title")
	}

	return titles, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	const query = `
		SELECT ` + titleReadColumns + `
		FROM title t
		LEFT JOIN category c ON c.id = t.category_id
		WHERE t.id = $1`

	row := repository.pool.QueryRow(context, query, id)
	title, err := scanTitle(row.Scan, nil)
	if err != nil {
		return nil, dberr.Wrap(err, "Title")
	}

	return title, nil
}

func (repository *PostgresRepository) Create(context context.Context, model *WriteModel) (int64, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "Title")
	}
	defer func() { _ = transaction.Rollback(context) }()

	categoryID, err := resolveCategory(context, transaction, model.CategorySlug)
	if err != nil {
		return 0, err
	}

	var titleID int64
	err = transaction.QueryRow(context,
		`INSERT INTO title (name, year, description, category_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		model.Name, model.Year, model.Description, categoryID,
	).Scan(&titleID)
	if err != nil {
		return 0, dberr.Wrap(err, "Title")
	}

	if err := replaceGenres(context, transaction, titleID, model.GenreSlugs); err != nil {
		return 0, err
	}

	if err := transaction.Commit(context); err != nil {
		return 0, dberr.Wrap(err, "Title")
	}

	return titleID, nil
}

func (repository *PostgresRepository) Update(context context.Context, model *WriteModel) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Title")
	}
	defer func() { _ = transaction.Rollback(context) }()

	cmd, err := transaction.Exec(context,
		`UPDATE title SET name = $2, year = $3, description = $4 WHERE id = $1`,
		model.ID, model.Name, model.Year, model.Description,
	)
	if err != nil {
		return dberr.Wrap(err, "Title")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if model.CategorySlug != nil {
		categoryID, err := resolveCategory(context, transaction, model.CategorySlug)
		if err != nil {
			return err
		}
		if _, err := transaction.Exec(context,
			`UPDATE title SET category_id = $2 WHERE id = $1`, model.ID, categoryID,
		); err != nil {
			return dberr.Wrap(err, "Title")
		}
	}

	if model.GenreSlugs != nil {
		if _, err := transaction.Exec(context,
			`DELETE FROM genre_title WHERE title_id = $1`, model.ID,
		); err != nil {
			return dberr.Wrap(err, "Title")
		}
		if err := replaceGenres(context, transaction, model.ID, model.GenreSlugs); err != nil {
			return err
		}
	}

	return dberr.Wrap(transaction.Commit(context), "Title")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	cmd, err := repository.pool.Exec(context, `DELETE FROM title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Title")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// resolveCategory maps a category slug to its primary key. A nil slug means
// "no change" and returns no ID; an unknown slug is NotFound.
func resolveCategory(context context.Context, transaction pgx.Tx, slug *string) (*int64, error) {
	if slug == nil {
		return nil, nil
	}

	var id int64
	err := transaction.QueryRow(context,
		`SELECT id FROM category WHERE slug = $1`, *slug,
	).Scan(&id)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return &id, nil
}

// replaceGenres links the title to every named genre. A slug that resolves
// to no genre row makes the affected count fall short and fails the write.
func replaceGenres(context context.Context, transaction pgx.Tx, titleID int64, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	cmd, err := transaction.Exec(context,
		`INSERT INTO genre_title (genre_id, title_id)
		 SELECT g.id, $1 FROM genre g WHERE g.slug = ANY($2)`,
		titleID, slugs,
	)
	if err != nil {
		return dberr.Wrap(err, "Genre")
	}
	if int(cmd.RowsAffected()) != len(slugs) {
		return dberr.Wrap(pgx.ErrNoRows, "Genre")
	}
	return nil
}

// scanTitle hydrates one read-shape row. totalCount is non-nil for the
// windowed list query and nil for single-row lookups.
func scanTitle(scan func(...any) error, totalCount *int) (*Title, error) {
	title := &Title{}
	var categoryName, categorySlug *string
	var genresJSON []byte

	targets := []any{
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.Rating,
		&categoryName,
		&categorySlug,
		&genresJSON,
	}
	if totalCount != nil {
		targets = append(targets, totalCount)
	}

	if err := scan(targets...); err != nil {
		return nil, err
	}

	if categorySlug != nil {
		title.Category = &category.Category{Name: *categoryName, Slug: *categorySlug}
	}

	if err := json.Unmarshal(genresJSON, &title.Genres); err != nil {
		return nil, fmt.Errorf("postgres_title_genres_unmarshal_failed: %w", err)
	}

	return title, nil
}
