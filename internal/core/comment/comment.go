// Copyright (c) 2026 Critica. All rights reserved.

// Package comment implements threaded follow-ups on reviews.
//
// A comment belongs to exactly one review and resolves only inside that
// review's scope, which itself resolves inside its title's scope. Unlike
// reviews, a user may comment on the same review any number of times.
package comment

import "time"

// Comment is a follow-up on a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

const FieldText = "text"
