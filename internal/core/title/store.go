// Copyright (c) 2026 Critica. All rights reserved.

package title

import "context"

// Filter narrows the title listing. Zero values mean "no constraint".
type Filter struct {
	CategorySlug string
	GenreSlug    string
	// Name is a case-insensitive substring match.
	Name   string
	Year   *int
	Limit  int
	Offset int
}

// WriteModel is the storage-level write shape of a title. The taxonomy is
// referenced by slug; resolution happens inside the repository so that the
// lookups and the write share one transaction.
type WriteModel struct {
	ID          int64
	Name        string
	Year        int
	Description string

	// CategorySlug is nil to keep the current category.
	CategorySlug *string

	// GenreSlugs is nil to keep the current genre links, non-nil (possibly
	// empty) to replace them.
	GenreSlugs []string
}

// Repository defines the data access contract for titles.
type Repository interface {
	// List returns a page of titles with nested taxonomy and rating, plus
	// the total match count.
	List(context context.Context, filter Filter) ([]Title, int, error)

	// FindByID returns a single title in the same read shape as List.
	FindByID(context context.Context, id int64) (*Title, error)

	// Create persists a new title and its genre links. An unknown category
	// or genre slug fails the whole transaction with NotFound.
	Create(context context.Context, model *WriteModel) (int64, error)

	// Update applies the write model to an existing title.
	Update(context context.Context, model *WriteModel) error

	// Delete removes the title; its reviews and their comments cascade.
	Delete(context context.Context, id int64) error
}
