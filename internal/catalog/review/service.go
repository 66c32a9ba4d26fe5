package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/pkg/pagination"
	"github.com/kritika-app/kritika/pkg/uuid"
)

const (
	minScore = 1
	maxScore = 10
)

// TitleChecker is the slice of the title repository needed to validate that
// nested review routes point at a real title.
type TitleChecker interface {
	Exists(context context.Context, id string) (bool, error)
}

type Service struct {
	repo   Repository
	titles TitleChecker
	logger *slog.Logger
}

func NewService(repo Repository, titles TitleChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// # Reviews

func (service *Service) ListReviews(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, page)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID string) (*Review, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Review")
		}
		return nil, err
	}

	return review, nil
}

func (service *Service) CreateReview(context context.Context, actor *sec.Actor, titleID string, input ReviewInput) (*Review, error) {
	if err := checkContribution(actor, http.MethodPost, ""); err != nil {
		return nil, err
	}

	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	v.Required("text", input.Text).
		Range("score", input.Score, minScore, maxScore)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// One review per user per title.
	alreadyReviewed, err := service.repo.HasUserReview(context, titleID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if alreadyReviewed {
		return nil, apperr.Conflict(
			"You have already reviewed this title.",
			apperr.FieldError{Field: "title", Message: "Only one review per title is allowed"},
		)
	}

	review := &Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
	)

	return review, nil
}

func (service *Service) UpdateReview(context context.Context, actor *sec.Actor, titleID, reviewID string, patch ReviewPatch) (*Review, error) {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := checkContribution(actor, http.MethodPatch, review.AuthorID); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}

	v := &validate.Validator{}
	v.Required("text", review.Text).
		Range("score", review.Score, minScore, maxScore)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_updated", slog.String("review_id", reviewID))
	return review, nil
}

func (service *Service) DeleteReview(context context.Context, actor *sec.Actor, titleID, reviewID string) error {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := checkContribution(actor, http.MethodDelete, review.AuthorID); err != nil {
		return err
	}

	deleted, err := service.repo.DeleteReview(context, reviewID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Review")
	}

	service.logger.InfoContext(context, "review_deleted", slog.String("review_id", reviewID))
	return nil
}

// # Comments

func (service *Service) ListComments(context context.Context, titleID, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, page)
}

func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := service.repo.GetComment(context, reviewID, commentID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, err
	}

	return comment, nil
}

func (service *Service) CreateComment(context context.Context, actor *sec.Actor, titleID, reviewID string, input CommentInput) (*Comment, error) {
	if err := checkContribution(actor, http.MethodPost, ""); err != nil {
		return nil, err
	}

	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	v.Required("text", input.Text)
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     input.Text,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", reviewID),
	)

	return comment, nil
}

func (service *Service) UpdateComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID string, patch CommentPatch) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := checkContribution(actor, http.MethodPatch, comment.AuthorID); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		comment.Text = *patch.Text
	}

	v := &validate.Validator{}
	v.Required("text", comment.Text)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_updated", slog.String("comment_id", commentID))
	return comment, nil
}

func (service *Service) DeleteComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID string) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := checkContribution(actor, http.MethodDelete, comment.AuthorID); err != nil {
		return err
	}

	deleted, err := service.repo.DeleteComment(context, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Comment")
	}

	service.logger.InfoContext(context, "comment_deleted", slog.String("comment_id", commentID))
	return nil
}

// ensureTitle turns a dangling title reference in the URL into a 404.
func (service *Service) ensureTitle(context context.Context, titleID string) error {
	exists, err := service.titles.Exists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// checkContribution enforces the author-moderator-admin policy on mutating
// operations. ownerID is empty for collection-level creates.
func checkContribution(actor *sec.Actor, method, ownerID string) error {
	if sec.AuthorModeratorAdminOrReadOnly(actor, method, ownerID) {
		return nil
	}
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("You do not have permission to modify this content")
}
