package title

import (
	"time"

	"github.com/kritika-app/kritika/internal/catalog/taxonomy"
)

// Title is a rateable work in the catalogue (a film, book, song, ...).
//
// Rating is the arithmetic mean of all review scores, or nil when the title
// has no reviews yet. It is always computed from the review table at read
// time, never stored.
type Title struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Description *string         `json:"description"`
	Rating      *float64        `json:"rating"`
	Genres      []taxonomy.Term `json:"genre"`
	Category    *taxonomy.Term  `json:"category"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// CreateInput is the payload for creating a title. Genres and the category
// are referenced by slug.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category"`
}

// UpdateInput is the payload for partially updating a title.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category"`
}

// Filter narrows the title listing.
type Filter struct {
	// Name matches as a case-insensitive substring.
	Name string
	// Year matches exactly.
	Year *int
	// Genre and Category match by slug.
	Genre    string
	Category string
}
