// Copyright (c) 2026 Critica. All rights reserved.

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critica-app/critica/internal/platform/apperr"
	"github.com/critica-app/critica/internal/platform/dberr"
)

/*
TestWrap_Classification checks the SQLSTATE → AppError mapping.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND"},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT"},
		{"fk_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "NOT_FOUND"},
		{"unknown_pg_error", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, "INTERNAL_ERROR"},
		{"plain_error", errors.New("connection reset"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "Review")
			require.Error(t, wrapped)

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestWrap_Passthrough verifies that nil and already-classified errors
pass through untouched.
*/
func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Review"))

	conflict := apperr.Conflict("You have already reviewed this title")
	assert.Same(t, conflict, apperr.As(dberr.Wrap(conflict, "Review")))
}

/*
TestIsUniqueViolation checks constraint-name matching.
*/
func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "review_author_title_unique",
	}

	assert.True(t, dberr.IsUniqueViolation(uniqueErr, ""))
	assert.True(t, dberr.IsUniqueViolation(uniqueErr, "review_author_title_unique"))
	assert.False(t, dberr.IsUniqueViolation(uniqueErr, "account_username_key"))

	fkErr := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.False(t, dberr.IsUniqueViolation(fkErr, ""))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain"), ""))
}
