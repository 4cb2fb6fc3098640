// Copyright (c) 2026 Critica. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/critica-app/critica/pkg/slug"
)

/*
TestFrom checks the name → slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Films", "films"},
		{"multi_word", "Science Fiction", "science-fiction"},
		{"diacritics", "Café Culture", "cafe-culture"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"digits", "Top 10 of 2026", "top-10-of-2026"},
		{"extra_whitespace", "  Stand-up   Comedy  ", "stand-up-comedy"},
		{"already_slug", "science-fiction", "science-fiction"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
