// Copyright (c) 2026 Critica. All rights reserved.

/*
Package title manages the catalog of reviewable works.

A title is a single work (a book, a film, a record) positioned in the
taxonomy: at most one category and any number of genres. Titles carry no
content of their own; the community's reviews attach to them, and the
aggregate score surfaces here as the read-only rating.
*/
package title

import (
	"github.com/critica-app/critica/internal/core/category"
	"github.com/critica-app/critica/internal/core/genre"
)

// Title is a reviewable work in the catalog.
//
// Rating is derived from review scores at read time, rounded to one decimal,
// and nil while the title has no reviews. It is never written directly.
type Title struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description string             `json:"description"`
	Rating      *float64           `json:"rating"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`
}

// Field names for validation.
const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"
)

// MaxNameLen mirrors the column width of title.name.
const MaxNameLen = 256
