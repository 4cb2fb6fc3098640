// Copyright (c) 2026 Critica. All rights reserved.

package comment

import "context"

// Repository defines the data access contract for comments. Every lookup is
// scoped to the (title, review) pair from the route.
type Repository interface {
	// ReviewExists reports whether the review exists under the title.
	ReviewExists(context context.Context, titleID, reviewID int64) (bool, error)

	// ListByReview returns a page of a review's comments plus the total count.
	ListByReview(context context.Context, reviewID int64, limit, offset int) ([]Comment, int, error)

	// FindByID returns the comment only if it belongs to the review.
	FindByID(context context.Context, reviewID, commentID int64) (*Comment, error)

	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, reviewID, commentID int64) error
}
