// Copyright (c) 2026 Critica. All rights reserved.

package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critica-app/critica/internal/platform/apperr"
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

func (repository *PostgresRepository) TitleExists(context context.Context, titleID int64) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(context,
		`SELECT EXISTS(SELECT 1 FROM title WHERE id = $1)`, titleID,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "Title")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, limit, offset int) ([]Review, int, error) {
	const query = `
		SELECT r.id, r.title_id, r.author_id, a.username, r.text, r.score, r.pub_date,
		       COUNT(*) OVER() AS total_count
		FROM review r
		JOIN account a ON a.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}
	defer rows.Close()

	reviews := []Review{}
	totalCount := 0

	for rows.Next() {
		var review Review
		if err := rows.Scan(
			&review.ID,
			&review.TitleID,
			&review.AuthorID,
			&review.Author,
			&review.Text,
			&review.Score,
			&review.PubDate,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Review")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}

	return reviews, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	const query = `
		SELECT r.id, r.title_id, r.author_id, a.username, r.text, r.score, r.pub_date
		FROM review r
		JOIN account a ON a.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2`

	review := &Review{}
	err := repository.pool.QueryRow(context, query, reviewID, titleID).Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Author,
		&review.Text,
		&review.Score,
		&review.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}

	return review, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO review (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date`

	err := repository.pool.QueryRow(context, query,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
	).Scan(&review.ID, &review.PubDate)

	if dberr.IsUniqueViolation(err, "") {
		return apperr.Conflict("You have already reviewed this title")
	}
	return dberr.Wrap(err, "Title")
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `UPDATE review SET text = $2, score = $3 WHERE id = $1`

	cmd, err := repository.pool.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "Review")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int64) error {
	const query = `DELETE FROM review WHERE id = $1 AND title_id = $2`

	cmd, err := repository.pool.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "Review")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
