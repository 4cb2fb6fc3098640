// Copyright (c) 2026 Critica. All rights reserved.

// PostgreSQL implementation of the identity repositories.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE constraint codes) are
// mapped to domain-friendly [apperr.AppError] types via dberr to avoid
// leaking storage implementation details.
package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critica-app/critica/internal/platform/dberr"
)

const userColumns = `id, username, email, first_name, last_name, bio, role, confirmation_hash, created_at`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM account
		WHERE id = $1`

	return repository.scanOne(context, query, id)
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM account
		WHERE username = $1`

	return repository.scanOne(context, query, username)
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM account
		WHERE email = $1`

	return repository.scanOne(context, query, email)
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO account (username, email, first_name, last_name, bio, role, confirmation_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationHash,
	).Scan(&user.ID, &user.CreatedAt)

	return dberr.Wrap(err, "User")
}

func (repository *PostgresUserRepository) UpdateConfirmationHash(context context.Context, userID int64, hash string) error {
	const query = `UPDATE account SET confirmation_hash = $2 WHERE id = $1`

	cmd, err := repository.pool.Exec(context, query, userID, hash)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresUserRepository) ClearConfirmationHash(context context.Context, userID int64) error {
	const query = `UPDATE account SET confirmation_hash = NULL WHERE id = $1`

	cmd, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresUserRepository) UpdateProfile(context context.Context, user *User) error {
	const query = `
		UPDATE account
		SET username = $2, email = $3, first_name = $4, last_name = $5, bio = $6
		WHERE id = $1`

	cmd, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// scanOne runs a single-row user query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}
