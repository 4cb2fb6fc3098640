// Copyright (c) 2026 Critica. All rights reserved.

// Package genre manages the genre taxonomy of the catalog.
package genre

// Genre is a label a title can carry any number of, addressed by slug.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// # Field Limits

const (
	MaxNameLen = 256
	MaxSlugLen = 50
)
