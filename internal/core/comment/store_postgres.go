// Copyright (c) 2026 Critica. All rights reserved.

package comment

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

func (repository *PostgresRepository) ReviewExists(context context.Context, titleID, reviewID int64) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(context,
		`SELECT EXISTS(SELECT 1 FROM review WHERE id = $1 AND title_id = $2)`,
		reviewID, titleID,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "Review")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int64, limit, offset int) ([]Comment, int, error) {
	const query = `
		SELECT c.id, c.review_id, c.author_id, a.username, c.text, c.pub_date,
		       COUNT(*) OVER() AS total_count
		FROM comment c
		JOIN account a ON a.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.pub_date, c.id
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := []Comment{}
	totalCount := 0

	for rows.Next() {
		var comment Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.ReviewID,
			&comment.AuthorID,
			&comment.Author,
			&comment.Text,
			&comment.PubDate,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}

	return comments, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	const query = `
		SELECT c.id, c.review_id, c.author_id, a.username, c.text, c.pub_date
		FROM comment c
		JOIN account a ON a.id = c.author_id
		WHERE c.id = $1 AND c.review_id = $2`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, commentID, reviewID).Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.Author,
		&comment.Text,
		&comment.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO comment (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date`

	err := repository.pool.QueryRow(context, query,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
	).Scan(&comment.ID, &comment.PubDate)

	return dberr.Wrap(err, "Review")
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `UPDATE comment SET text = $2 WHERE id = $1`

	cmd, err := repository.pool.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID int64) error {
	const query = `DELETE FROM comment WHERE id = $1 AND review_id = $2`

	cmd, err := repository.pool.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
