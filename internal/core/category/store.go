// Copyright (c) 2026 Critica. All rights reserved.

package category

import "context"

// ListFilter narrows the category listing.
type ListFilter struct {
	// Search is a case-insensitive substring match on name.
	Search string
	Limit  int
	Offset int
}

// Repository defines the data access contract for categories.
type Repository interface {
	List(context context.Context, filter ListFilter) ([]Category, int, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
