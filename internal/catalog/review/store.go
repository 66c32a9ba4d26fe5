package review

import (
	"context"

	"github.com/kritika-app/kritika/pkg/pagination"
)

type Repository interface {
	// Reviews
	ListReviews(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error)
	GetReview(context context.Context, titleID, reviewID string) (*Review, error)
	HasUserReview(context context.Context, titleID, authorID string) (bool, error)
	CreateReview(context context.Context, review *Review) error
	UpdateReview(context context.Context, review *Review) error
	DeleteReview(context context.Context, id string) (bool, error)

	// Comments
	ListComments(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error)
	GetComment(context context.Context, reviewID, commentID string) (*Comment, error)
	CreateComment(context context.Context, comment *Comment) error
	UpdateComment(context context.Context, comment *Comment) error
	DeleteComment(context context.Context, id string) (bool, error)
}
