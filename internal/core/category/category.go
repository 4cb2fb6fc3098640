// Copyright (c) 2026 Critica. All rights reserved.

/*
Package category manages the category taxonomy of the catalog.

A category is the broad kind of a title (book, film, music). Each title
carries at most one category; deleting a category detaches its titles
rather than removing them.
*/
package category

// Category is a broad classification a title belongs to.
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field names for validation.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Column width limits of the category table.
const (
	MaxNameLen = 256
	MaxSlugLen = 50
)
