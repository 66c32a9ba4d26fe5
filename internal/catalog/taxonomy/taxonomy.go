package taxonomy

import "time"

// Term is a catalogue classification entry. Categories and genres share the
// same shape: a display name plus a unique URL slug used as the public
// identifier.
type Term struct {
	ID        string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// CreateInput is the payload for creating a category or genre.
// Slug is optional: when omitted it is derived from Name.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
