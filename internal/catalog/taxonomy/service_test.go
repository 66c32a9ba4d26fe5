// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package taxonomy_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/catalog/taxonomy"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/pkg/pagination"
)

type fakeRepo struct {
	terms map[string]*taxonomy.Term // keyed by slug
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{terms: map[string]*taxonomy.Term{}}
}

func (r *fakeRepo) List(_ context.Context, _ string, _ pagination.Params) ([]*taxonomy.Term, int, error) {
	out := []*taxonomy.Term{}
	for _, term := range r.terms {
		out = append(out, term)
	}
	return out, len(out), nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (*taxonomy.Term, error) {
	if term, ok := r.terms[slug]; ok {
		return term, nil
	}
	return nil, apperr.NotFound("Term")
}

func (r *fakeRepo) Create(_ context.Context, term *taxonomy.Term) error {
	r.terms[term.Slug] = term
	return nil
}

func (r *fakeRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	if _, ok := r.terms[slug]; !ok {
		return false, nil
	}
	delete(r.terms, slug)
	return true, nil
}

func admin() *sec.Actor {
	return &sec.Actor{UserID: "a1", Username: "admin", Role: sec.RoleAdmin}
}

/*
TestCreate_SlugDerivation verifies that the slug is derived from the name
when omitted and honored when provided.
*/
func TestCreate_SlugDerivation(t *testing.T) {
	repo := newFakeRepo()
	service := taxonomy.NewService(repo, slog.Default(), "Genre")

	term, err := service.Create(context.Background(), admin(), taxonomy.CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", term.Slug)

	term, err = service.Create(context.Background(), admin(), taxonomy.CreateInput{Name: "Science Fiction", Slug: "sci-fi"})
	require.NoError(t, err)
	assert.Equal(t, "sci-fi", term.Slug)
}

/*
TestCreate_Validation covers name and slug format rules.
*/
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input taxonomy.CreateInput
	}{
		{"missing_name", taxonomy.CreateInput{Slug: "x"}},
		{"bad_slug", taxonomy.CreateInput{Name: "Drama", Slug: "Bad Slug!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := taxonomy.NewService(newFakeRepo(), slog.Default(), "Category")

			_, err := service.Create(context.Background(), admin(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestCreate_Permissions verifies that only admins may write.
*/
func TestCreate_Permissions(t *testing.T) {
	service := taxonomy.NewService(newFakeRepo(), slog.Default(), "Category")
	input := taxonomy.CreateInput{Name: "Drama"}

	_, err := service.Create(context.Background(), nil, input)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	_, err = service.Create(context.Background(), &sec.Actor{UserID: "u1", Role: sec.RoleUser}, input)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestDelete verifies removal by slug and the label-specific 404 message.
*/
func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	service := taxonomy.NewService(repo, slog.Default(), "Genre")

	_, err := service.Create(context.Background(), admin(), taxonomy.CreateInput{Name: "Drama"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), admin(), "drama"))

	err = service.Delete(context.Background(), admin(), "drama")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Genre not found", ae.Message)
}
