// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package review_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/catalog/review"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// # Test Fakes

type fakeTitleChecker struct {
	known map[string]bool
}

func (c *fakeTitleChecker) Exists(_ context.Context, id string) (bool, error) {
	return c.known[id], nil
}

type fakeReviewRepo struct {
	reviews  map[string]*review.Review  // keyed by review ID
	comments map[string]*review.Comment // keyed by comment ID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:  map[string]*review.Review{},
		comments: map[string]*review.Comment{},
	}
}

func (r *fakeReviewRepo) ListReviews(_ context.Context, titleID string, _ pagination.Params) ([]*review.Review, int, error) {
	out := []*review.Review{}
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			out = append(out, rv)
		}
	}
	return out, len(out), nil
}

func (r *fakeReviewRepo) GetReview(_ context.Context, titleID, reviewID string) (*review.Review, error) {
	rv, ok := r.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return rv, nil
}

func (r *fakeReviewRepo) HasUserReview(_ context.Context, titleID, authorID string) (bool, error) {
	for _, rv := range r.reviews {
		if rv.TitleID == titleID && rv.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) CreateReview(_ context.Context, rv *review.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeReviewRepo) UpdateReview(_ context.Context, rv *review.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeReviewRepo) DeleteReview(_ context.Context, id string) (bool, error) {
	if _, ok := r.reviews[id]; !ok {
		return false, nil
	}
	delete(r.reviews, id)
	return true, nil
}

func (r *fakeReviewRepo) ListComments(_ context.Context, reviewID string, _ pagination.Params) ([]*review.Comment, int, error) {
	out := []*review.Comment{}
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r *fakeReviewRepo) GetComment(_ context.Context, reviewID, commentID string) (*review.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (r *fakeReviewRepo) CreateComment(_ context.Context, c *review.Comment) error {
	r.comments[c.ID] = c
	return nil
}

func (r *fakeReviewRepo) UpdateComment(_ context.Context, c *review.Comment) error {
	r.comments[c.ID] = c
	return nil
}

func (r *fakeReviewRepo) DeleteComment(_ context.Context, id string) (bool, error) {
	if _, ok := r.comments[id]; !ok {
		return false, nil
	}
	delete(r.comments, id)
	return true, nil
}

func newTestService(repo *fakeReviewRepo, titleIDs ...string) *review.Service {
	known := map[string]bool{}
	for _, id := range titleIDs {
		known[id] = true
	}
	return review.NewService(repo, &fakeTitleChecker{known: known}, slog.Default())
}

func member(id, username string) *sec.Actor {
	return &sec.Actor{UserID: id, Username: username, Role: sec.RoleUser}
}

// # Review Lifecycle

/*
TestCreateReview_Success verifies the happy path with author attribution.
*/
func TestCreateReview_Success(t *testing.T) {
	repo := newFakeReviewRepo()
	service := newTestService(repo, "title-1")

	rv, err := service.CreateReview(context.Background(), member("u1", "maksim"), "title-1", review.ReviewInput{
		Text:  "Loved it.",
		Score: 9,
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", rv.AuthorID)
	assert.Equal(t, "maksim", rv.Author)
	assert.Equal(t, 9, rv.Score)
	assert.Len(t, repo.reviews, 1)
}

/*
TestCreateReview_Anonymous verifies that unauthenticated creation is a 401.
*/
func TestCreateReview_Anonymous(t *testing.T) {
	service := newTestService(newFakeReviewRepo(), "title-1")

	_, err := service.CreateReview(context.Background(), nil, "title-1", review.ReviewInput{Text: "x", Score: 5})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

/*
TestCreateReview_UnknownTitle verifies the dangling-URL case.
*/
func TestCreateReview_UnknownTitle(t *testing.T) {
	service := newTestService(newFakeReviewRepo())

	_, err := service.CreateReview(context.Background(), member("u1", "maksim"), "ghost", review.ReviewInput{Text: "x", Score: 5})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestCreateReview_ScoreBounds verifies score validation at both edges.
*/
func TestCreateReview_ScoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		isValid bool
	}{
		{"min", 1, true},
		{"max", 10, true},
		{"zero", 0, false},
		{"eleven", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeReviewRepo(), "title-1")

			_, err := service.CreateReview(context.Background(), member("u1", "maksim"), "title-1", review.ReviewInput{
				Text:  "text",
				Score: tt.score,
			})

			if tt.isValid {
				assert.NoError(t, err)
			} else {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			}
		})
	}
}

/*
TestCreateReview_Duplicate verifies the one-review-per-title rule.
*/
func TestCreateReview_Duplicate(t *testing.T) {
	service := newTestService(newFakeReviewRepo(), "title-1")
	author := member("u1", "maksim")

	_, err := service.CreateReview(context.Background(), author, "title-1", review.ReviewInput{Text: "first", Score: 7})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), author, "title-1", review.ReviewInput{Text: "second", Score: 8})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// A different user reviewing the same title is fine.
	_, err = service.CreateReview(context.Background(), member("u2", "anna"), "title-1", review.ReviewInput{Text: "mine", Score: 6})
	assert.NoError(t, err)
}

// # Ownership & Moderation

func seedReview(t *testing.T, service *review.Service, author *sec.Actor) *review.Review {
	t.Helper()
	rv, err := service.CreateReview(context.Background(), author, "title-1", review.ReviewInput{Text: "original", Score: 5})
	require.NoError(t, err)
	return rv
}

/*
TestUpdateReview_Permissions covers the author/moderator/admin matrix for
modifying an existing review.
*/
func TestUpdateReview_Permissions(t *testing.T) {
	owner := member("owner", "owner")

	tests := []struct {
		name     string
		actor    *sec.Actor
		wantCode string
	}{
		{"author", owner, ""},
		{"other_user", member("u2", "anna"), "FORBIDDEN"},
		{"moderator", &sec.Actor{UserID: "m1", Username: "mod", Role: sec.RoleModerator}, ""},
		{"admin", &sec.Actor{UserID: "a1", Username: "admin", Role: sec.RoleAdmin}, ""},
		{"anonymous", nil, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeReviewRepo(), "title-1")
			rv := seedReview(t, service, owner)

			newText := "edited"
			_, err := service.UpdateReview(context.Background(), tt.actor, "title-1", rv.ID, review.ReviewPatch{Text: &newText})

			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.wantCode, ae.Code)
			}
		})
	}
}

/*
TestDeleteReview verifies owner deletion and the unknown-review case.
*/
func TestDeleteReview(t *testing.T) {
	owner := member("owner", "owner")
	service := newTestService(newFakeReviewRepo(), "title-1")
	rv := seedReview(t, service, owner)

	require.NoError(t, service.DeleteReview(context.Background(), owner, "title-1", rv.ID))

	err := service.DeleteReview(context.Background(), owner, "title-1", rv.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Comments

/*
TestComments_Lifecycle exercises create, update, and foreign-author rejection
for comments nested under a review.
*/
func TestComments_Lifecycle(t *testing.T) {
	owner := member("owner", "owner")
	service := newTestService(newFakeReviewRepo(), "title-1")
	rv := seedReview(t, service, owner)

	commenter := member("c1", "anna")
	comment, err := service.CreateComment(context.Background(), commenter, "title-1", rv.ID, review.CommentInput{Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, "anna", comment.Author)

	// The comment author can edit it.
	newText := "strongly agreed"
	updated, err := service.UpdateComment(context.Background(), commenter, "title-1", rv.ID, comment.ID, review.CommentPatch{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)

	// A third user cannot.
	_, err = service.UpdateComment(context.Background(), member("u3", "boris"), "title-1", rv.ID, comment.ID, review.CommentPatch{Text: &newText})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestCreateComment_UnknownReview verifies the nested 404 path.
*/
func TestCreateComment_UnknownReview(t *testing.T) {
	service := newTestService(newFakeReviewRepo(), "title-1")

	_, err := service.CreateComment(context.Background(), member("u1", "maksim"), "title-1", "ghost", review.CommentInput{Text: "hello"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
