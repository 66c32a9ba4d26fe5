// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package title_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/catalog/taxonomy"
	"github.com/kritika-app/kritika/internal/catalog/title"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// # Test Fakes

type fakeTermRepo struct {
	terms map[string]*taxonomy.Term // keyed by slug
}

func newFakeTermRepo(terms ...*taxonomy.Term) *fakeTermRepo {
	repo := &fakeTermRepo{terms: map[string]*taxonomy.Term{}}
	for _, term := range terms {
		repo.terms[term.Slug] = term
	}
	return repo
}

func (r *fakeTermRepo) List(_ context.Context, _ string, _ pagination.Params) ([]*taxonomy.Term, int, error) {
	out := []*taxonomy.Term{}
	for _, term := range r.terms {
		out = append(out, term)
	}
	return out, len(out), nil
}

func (r *fakeTermRepo) GetBySlug(_ context.Context, slug string) (*taxonomy.Term, error) {
	if term, ok := r.terms[slug]; ok {
		return term, nil
	}
	return nil, apperr.NotFound("Term")
}

func (r *fakeTermRepo) Create(_ context.Context, term *taxonomy.Term) error {
	r.terms[term.Slug] = term
	return nil
}

func (r *fakeTermRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	if _, ok := r.terms[slug]; !ok {
		return false, nil
	}
	delete(r.terms, slug)
	return true, nil
}

type fakeTitleRepo struct {
	titles       map[string]*title.Title
	lastCategory *string
	lastGenres   []string
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: map[string]*title.Title{}}
}

func (r *fakeTitleRepo) List(_ context.Context, _ title.Filter, _ pagination.Params) ([]*title.Title, int, error) {
	out := []*title.Title{}
	for _, t := range r.titles {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *fakeTitleRepo) GetByID(_ context.Context, id string) (*title.Title, error) {
	if t, ok := r.titles[id]; ok {
		return t, nil
	}
	return nil, apperr.NotFound("Title")
}

func (r *fakeTitleRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.titles[id]
	return ok, nil
}

func (r *fakeTitleRepo) Create(_ context.Context, t *title.Title, categoryID *string, genreIDs []string) error {
	r.titles[t.ID] = t
	r.lastCategory = categoryID
	r.lastGenres = genreIDs
	return nil
}

func (r *fakeTitleRepo) Update(_ context.Context, t *title.Title, categoryID *string, genreIDs []string, replaceGenres bool) error {
	r.titles[t.ID] = t
	r.lastCategory = categoryID
	if replaceGenres {
		r.lastGenres = genreIDs
	}
	return nil
}

func (r *fakeTitleRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.titles[id]; !ok {
		return false, nil
	}
	delete(r.titles, id)
	return true, nil
}

func admin() *sec.Actor {
	return &sec.Actor{UserID: "a1", Username: "admin", Role: sec.RoleAdmin}
}

func newTestService(repo *fakeTitleRepo) *title.Service {
	categories := newFakeTermRepo(&taxonomy.Term{ID: "cat-1", Name: "Books", Slug: "books"})
	genres := newFakeTermRepo(
		&taxonomy.Term{ID: "gen-1", Name: "Drama", Slug: "drama"},
		&taxonomy.Term{ID: "gen-2", Name: "Comedy", Slug: "comedy"},
	)
	return title.NewService(repo, categories, genres, slog.Default())
}

// # Creation

/*
TestCreateTitle_Success verifies slug resolution and response hydration.
*/
func TestCreateTitle_Success(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), admin(), title.CreateInput{
		Name:     "War and Peace",
		Year:     1869,
		Genre:    []string{"drama", "comedy", "drama"},
		Category: "books",
	})

	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "books", created.Category.Slug)

	// Duplicate genre slugs collapse to one link.
	assert.Len(t, created.Genres, 2)
	assert.Equal(t, []string{"gen-1", "gen-2"}, repo.lastGenres)
	require.NotNil(t, repo.lastCategory)
	assert.Equal(t, "cat-1", *repo.lastCategory)
}

/*
TestCreateTitle_Permissions verifies the admin-or-read-only write policy.
*/
func TestCreateTitle_Permissions(t *testing.T) {
	input := title.CreateInput{Name: "X", Year: 2000, Category: "books"}

	tests := []struct {
		name     string
		actor    *sec.Actor
		wantCode string
	}{
		{"anonymous", nil, "UNAUTHORIZED"},
		{"regular_user", &sec.Actor{UserID: "u1", Role: sec.RoleUser}, "FORBIDDEN"},
		{"moderator", &sec.Actor{UserID: "m1", Role: sec.RoleModerator}, "FORBIDDEN"},
		{"admin", admin(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeTitleRepo())

			_, err := service.Create(context.Background(), tt.actor, input)

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
TestCreateTitle_Validation covers the year and reference-slug rules.
*/
func TestCreateTitle_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     title.CreateInput
		wantField string
	}{
		{"future_year", title.CreateInput{Name: "X", Year: time.Now().Year() + 1, Category: "books"}, "year"},
		{"missing_name", title.CreateInput{Year: 2000, Category: "books"}, "name"},
		{"missing_category", title.CreateInput{Name: "X", Year: 2000}, "category"},
		{"unknown_category", title.CreateInput{Name: "X", Year: 2000, Category: "ghost"}, "category"},
		{"unknown_genre", title.CreateInput{Name: "X", Year: 2000, Category: "books", Genre: []string{"ghost"}}, "genre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeTitleRepo())

			_, err := service.Create(context.Background(), admin(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

// # Updates & Deletion

/*
TestUpdateTitle verifies the patch path, including genre replacement.
*/
func TestUpdateTitle(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), admin(), title.CreateInput{
		Name:     "Original",
		Year:     1990,
		Genre:    []string{"drama"},
		Category: "books",
	})
	require.NoError(t, err)

	newName := "Renamed"
	newGenres := []string{"comedy"}
	updated, err := service.Update(context.Background(), admin(), created.ID, title.UpdateInput{
		Name:  &newName,
		Genre: &newGenres,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1990, updated.Year)
	assert.Equal(t, []string{"gen-2"}, repo.lastGenres)
}

/*
TestUpdateTitle_NotFound verifies the unknown-ID path.
*/
func TestUpdateTitle_NotFound(t *testing.T) {
	service := newTestService(newFakeTitleRepo())

	name := "X"
	_, err := service.Update(context.Background(), admin(), "ghost", title.UpdateInput{Name: &name})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestDeleteTitle verifies deletion and the repeated-delete 404.
*/
func TestDeleteTitle(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), admin(), title.CreateInput{
		Name: "Doomed", Year: 2000, Category: "books",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), admin(), created.ID))

	err = service.Delete(context.Background(), admin(), created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
