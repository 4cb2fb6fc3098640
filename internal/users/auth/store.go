// Copyright (c) 2026 Critica. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for identity records.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	// Create persists a brand-new account. The database's unique constraints
	// on username and email are the authority; a concurrent duplicate insert
	// surfaces as a Conflict, never as a second row.
	Create(context context.Context, user *User) error

	// UpdateConfirmationHash replaces the outstanding confirmation-code hash.
	UpdateConfirmationHash(context context.Context, userID int64, hash string) error

	// ClearConfirmationHash removes the outstanding confirmation-code hash
	// after a successful token exchange.
	ClearConfirmationHash(context context.Context, userID int64) error

	// UpdateProfile persists the mutable self-service profile fields
	// (username, email, first/last name, bio). Role is deliberately absent.
	UpdateProfile(context context.Context, user *User) error
}

// # Volatile Data Access

// ThrottleRepository bounds confirmation-code guessing on the token endpoint.
//
// Signup itself is never throttled per identity: a repeated signup for the
// same pair must always re-issue a fresh code. The brute-force surface is the
// token exchange, where the code is the only secret.
type ThrottleRepository interface {
	// FailureCount returns the number of failed code attempts currently on
	// record for the username.
	FailureCount(context context.Context, username string) (int64, error)

	// RegisterFailure records a failed code attempt and returns the failure
	// count inside the current window. The window starts at the first failure.
	RegisterFailure(context context.Context, username string, window time.Duration) (int64, error)

	// ClearFailures wipes the failure record after a successful exchange.
	ClearFailures(context context.Context, username string) error
}
