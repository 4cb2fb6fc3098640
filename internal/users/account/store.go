// Copyright (c) 2026 Critica. All rights reserved.

package account

import (
	"context"

	"github.com/critica-app/critica/internal/users/auth"
)

// # Data Access Contracts

// ListFilter narrows the administrative user listing.
type ListFilter struct {
	// Search is a case-insensitive substring match on username.
	Search string
	Limit  int
	Offset int
}

// AccountRepository defines the administrative data access contract over
// identity records. Lookups are keyed by username, mirroring the admin API.
type AccountRepository interface {
	// List returns a page of accounts plus the total match count.
	List(context context.Context, filter ListFilter) ([]auth.User, int, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*auth.User, error)

	// Create persists a new account provisioned by an administrator.
	Create(context context.Context, user *auth.User) error

	// Update persists all mutable fields including the role.
	Update(context context.Context, user *auth.User) error

	// Delete removes the account and, via cascades, its authored content.
	Delete(context context.Context, username string) error
}
