// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritika-app/kritika/pkg/slug"
)

/*
TestFrom verifies slug generation across the normalization pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Drama", "drama"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Littéraire", "cafe-litteraire"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"multiple_spaces", "Film   Noir", "film-noir"},
		{"leading_trailing", "  Horror  ", "horror"},
		{"digits", "Top 10 Books", "top-10-books"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
