// Copyright (c) 2026 Critica. All rights reserved.

package genre

import "context"

// ListFilter narrows and pages a genre listing.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// Repository defines the data access contract for genres.
type Repository interface {
	// List returns a page of genres plus the total match count.
	List(context context.Context, filter ListFilter) ([]Genre, int, error)

	// Create persists a new genre. The unique constraints on name and slug
	// are the authority for duplicates.
	Create(context context.Context, genre *Genre) error

	// DeleteBySlug removes the genre with the given slug.
	DeleteBySlug(context context.Context, slug string) error
}
