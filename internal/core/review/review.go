// Copyright (c) 2026 Critica. All rights reserved.

/*
Package review implements community reviews of catalog titles.

A review is one user's verdict on one title: a text plus a score from 0 to
10. The pair (author, title) is unique; the relational schema enforces it,
so a concurrent duplicate surfaces as a conflict rather than a second row.
Review scores feed the title's derived rating.
*/
package review

import "time"

// Review is a scored verdict on a title, serialized with the author's
// username rather than an internal ID.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Field names for validation.
const (
	FieldText  = "text"
	FieldScore = "score"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 10
)
