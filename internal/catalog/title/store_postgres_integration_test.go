//go:build integration

// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package title_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kritika-app/kritika/internal/catalog/review"
	"github.com/kritika-app/kritika/internal/catalog/taxonomy"
	"github.com/kritika-app/kritika/internal/catalog/title"
	"github.com/kritika-app/kritika/internal/platform/migration"
	pgstore "github.com/kritika-app/kritika/internal/platform/postgres"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/uuid"
)

// setupDatabase starts a throwaway PostgreSQL container, applies the
// migrations, and returns a connected pool.
func setupDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("kritika"),
		postgres.WithUsername("kritika"),
		postgres.WithPassword("kritika"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", log))

	pool, err := pgstore.NewPool(ctx, dsn, log)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func createUser(t *testing.T, pool *pgxpool.Pool, username string) *auth.User {
	t.Helper()
	user := &auth.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Role:     sec.RoleUser,
	}
	require.NoError(t, auth.NewUserRepository(pool).Create(context.Background(), user))
	return user
}

func createCategory(t *testing.T, pool *pgxpool.Pool, name, slug string) *taxonomy.Term {
	t.Helper()
	term := &taxonomy.Term{ID: uuid.New(), Name: name, Slug: slug}
	require.NoError(t, taxonomy.NewCategoryPostgresRepository(pool).Create(context.Background(), term))
	return term
}

/*
TestTitleRating_Mean verifies that the rating annotation is the arithmetic
mean of all review scores, computed live at read time, and absent while the
title has no reviews.
*/
func TestTitleRating_Mean(t *testing.T) {
	pool := setupDatabase(t)
	ctx := context.Background()

	category := createCategory(t, pool, "Books", "books")
	titles := title.NewPostgresRepository(pool)

	stored := &title.Title{ID: uuid.New(), Name: "War and Peace", Year: 1869}
	require.NoError(t, titles.Create(ctx, stored, &category.ID, nil))

	unrated, err := titles.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Nil(t, unrated.Rating)

	reviews := review.NewPostgresRepository(pool)
	for i, score := range []int{4, 7} {
		author := createUser(t, pool, []string{"maksim", "anna"}[i])
		err := reviews.CreateReview(ctx, &review.Review{
			ID:       uuid.New(),
			TitleID:  stored.ID,
			AuthorID: author.ID,
			Text:     "Worth reading.",
			Score:    score,
		})
		require.NoError(t, err)
	}

	rated, err := titles.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.InDelta(t, 5.5, *rated.Rating, 0.0001)
}

/*
TestCategoryDelete_ClearsTitleCategory verifies that removing a category
keeps its titles but detaches them from the deleted category.
*/
func TestCategoryDelete_ClearsTitleCategory(t *testing.T) {
	pool := setupDatabase(t)
	ctx := context.Background()

	category := createCategory(t, pool, "Films", "films")
	titles := title.NewPostgresRepository(pool)

	stored := &title.Title{ID: uuid.New(), Name: "Stalker", Year: 1979}
	require.NoError(t, titles.Create(ctx, stored, &category.ID, nil))

	deleted, err := taxonomy.NewCategoryPostgresRepository(pool).DeleteBySlug(ctx, "films")
	require.NoError(t, err)
	require.True(t, deleted)

	orphaned, err := titles.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Nil(t, orphaned.Category)
	assert.Equal(t, "Stalker", orphaned.Name)
}
