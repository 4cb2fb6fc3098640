// Copyright (c) 2026 Critica. All rights reserved.

package account

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critica-app/critica/internal/platform/dberr"
	"github.com/critica-app/critica/internal/users/auth"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation of [AccountRepository].
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
List returns a filtered, paginated slice of accounts and the total count.

Description:
  - Window Function: Uses COUNT(*) OVER() to retrieve the total match count
    in the same round-trip as the page itself.
  - Search: Case-insensitive substring match on username.
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter ListFilter) ([]auth.User, int, error) {
	const query = `
		SELECT id, username, email, first_name, last_name, bio, role, created_at,
		       COUNT(*) OVER() AS total_count
		FROM account
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
		ORDER BY username
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := []auth.User{}
	totalCount := 0

	for rows.Next() {
		var user auth.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Bio,
			&user.Role,
			&user.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return users, totalCount, nil
}

func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	const query = `
		SELECT id, username, email, first_name, last_name, bio, role, created_at
		FROM account
		WHERE username = $1`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	const query = `
		INSERT INTO account (username, email, first_name, last_name, bio, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)

	return dberr.Wrap(err, "User")
}

func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE account
		SET username = $2, email = $3, first_name = $4, last_name = $5, bio = $6, role = $7
		WHERE id = $1`

	cmd, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresAccountRepository) Delete(context context.Context, username string) error {
	const query = `DELETE FROM account WHERE username = $1`

	cmd, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
