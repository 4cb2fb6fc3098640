// Copyright (c) 2026 Critica. All rights reserved.

package review

import "context"

// Repository defines the data access contract for reviews. Every lookup is
// scoped to a title: a review reached through the wrong title is NotFound.
type Repository interface {
	// TitleExists reports whether the parent title is present.
	TitleExists(context context.Context, titleID int64) (bool, error)

	// ListByTitle returns a page of a title's reviews plus the total count.
	ListByTitle(context context.Context, titleID int64, limit, offset int) ([]Review, int, error)

	// FindByID returns the review only if it belongs to the title.
	FindByID(context context.Context, titleID, reviewID int64) (*Review, error)

	// Create persists a new review. The (author, title) unique constraint is
	// the duplicate authority.
	Create(context context.Context, review *Review) error

	// Update persists a changed text and score.
	Update(context context.Context, review *Review) error

	// Delete removes the review within its title's scope.
	Delete(context context.Context, titleID, reviewID int64) error
}
