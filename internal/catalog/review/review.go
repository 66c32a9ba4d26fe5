package review

import "time"

// Review is a scored write-up a user leaves on a title. A user can hold at
// most one review per title; the average of all review scores is the title's
// rating.
type Review struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// ReviewInput is the payload for creating or updating a review.
// The author and title are taken from the request context and URL, never
// from the body.
type ReviewInput struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// ReviewPatch is the payload for partially updating a review.
type ReviewPatch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// CommentInput is the payload for creating a comment.
type CommentInput struct {
	Text string `json:"text"`
}

// CommentPatch is the payload for partially updating a comment.
type CommentPatch struct {
	Text *string `json:"text"`
}
