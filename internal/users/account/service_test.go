// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/users/account"
	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/pagination"
)

type fakeAccountRepo struct {
	users map[string]*auth.User // keyed by username
}

func newFakeAccountRepo(users ...*auth.User) *fakeAccountRepo {
	repo := &fakeAccountRepo{users: map[string]*auth.User{}}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (r *fakeAccountRepo) List(_ context.Context, _ string, _ pagination.Params) ([]*auth.User, int, error) {
	out := []*auth.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) Create(_ context.Context, user *auth.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, user *auth.User) error {
	for key, u := range r.users {
		if u.ID == user.ID && key != user.Username {
			delete(r.users, key)
		}
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id string) (bool, error) {
	for key, u := range r.users {
		if u.ID == id {
			delete(r.users, key)
			return true, nil
		}
	}
	return false, nil
}

func adminActor() *sec.Actor {
	return &sec.Actor{UserID: "a1", Username: "admin", Role: sec.RoleAdmin}
}

// # Administrative Access

/*
TestAdminGating verifies that every management operation requires the admin
role or the staff flag.
*/
func TestAdminGating(t *testing.T) {
	repo := newFakeAccountRepo(&auth.User{ID: "u1", Username: "maksim", Email: "m@example.com", Role: sec.RoleUser})
	service := account.NewService(repo, slog.Default())

	actors := []struct {
		name     string
		actor    *sec.Actor
		wantCode string
	}{
		{"anonymous", nil, "UNAUTHORIZED"},
		{"regular_user", &sec.Actor{UserID: "u1", Role: sec.RoleUser}, "FORBIDDEN"},
		{"moderator", &sec.Actor{UserID: "m1", Role: sec.RoleModerator}, "FORBIDDEN"},
		{"staff_user", &sec.Actor{UserID: "s1", Role: sec.RoleUser, Staff: true}, ""},
		{"admin", adminActor(), ""},
	}

	for _, tt := range actors {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.List(context.Background(), tt.actor, "", pagination.Params{Page: 1, Limit: 20})

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
TestCreate_DefaultsAndRole verifies role defaulting and role validation.
*/
func TestCreate_DefaultsAndRole(t *testing.T) {
	service := account.NewService(newFakeAccountRepo(), slog.Default())

	user, err := service.Create(context.Background(), adminActor(), account.CreateInput{
		Username: "anna",
		Email:    "anna@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)

	user, err = service.Create(context.Background(), adminActor(), account.CreateInput{
		Username: "boris",
		Email:    "boris@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)

	_, err = service.Create(context.Background(), adminActor(), account.CreateInput{
		Username: "carol",
		Email:    "carol@example.com",
		Role:     "superuser",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "role", ae.Details[0].Field)
}

/*
TestUpdate_RoleChange verifies that administrators can promote accounts.
*/
func TestUpdate_RoleChange(t *testing.T) {
	repo := newFakeAccountRepo(&auth.User{ID: "u1", Username: "maksim", Email: "m@example.com", Role: sec.RoleUser})
	service := account.NewService(repo, slog.Default())

	role := "moderator"
	user, err := service.Update(context.Background(), adminActor(), "maksim", account.UpdateInput{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

/*
TestDelete verifies removal and the unknown-username 404.
*/
func TestDelete(t *testing.T) {
	repo := newFakeAccountRepo(&auth.User{ID: "u1", Username: "maksim", Email: "m@example.com", Role: sec.RoleUser})
	service := account.NewService(repo, slog.Default())

	require.NoError(t, service.Delete(context.Background(), adminActor(), "maksim"))

	err := service.Delete(context.Background(), adminActor(), "maksim")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Profile Self-Service

/*
TestMe verifies profile retrieval for the authenticated caller.
*/
func TestMe(t *testing.T) {
	repo := newFakeAccountRepo(&auth.User{ID: "u1", Username: "maksim", Email: "m@example.com", Role: sec.RoleUser})
	service := account.NewService(repo, slog.Default())

	user, err := service.Me(context.Background(), &sec.Actor{UserID: "u1", Username: "maksim", Role: sec.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "maksim", user.Username)

	_, err = service.Me(context.Background(), nil)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

/*
TestUpdateMe verifies the self-service patch and that it cannot touch the
role: the input type has no role field, so the stored role must survive.
*/
func TestUpdateMe(t *testing.T) {
	repo := newFakeAccountRepo(&auth.User{ID: "u1", Username: "maksim", Email: "m@example.com", Role: sec.RoleUser})
	service := account.NewService(repo, slog.Default())
	actor := &sec.Actor{UserID: "u1", Username: "maksim", Role: sec.RoleUser}

	bio := "Reader of long novels."
	user, err := service.UpdateMe(context.Background(), actor, account.ProfileInput{Bio: &bio})

	require.NoError(t, err)
	assert.Equal(t, bio, user.Bio)
	assert.Equal(t, sec.RoleUser, user.Role)
}

/*
TestUpdateMe_InvalidUsername verifies that self-service renames obey the
shared identity rules.
*/
func TestUpdateMe_InvalidUsername(t *testing.T) {
	repo := newFakeAccountRepo(&auth.User{ID: "u1", Username: "maksim", Email: "m@example.com", Role: sec.RoleUser})
	service := account.NewService(repo, slog.Default())
	actor := &sec.Actor{UserID: "u1", Username: "maksim", Role: sec.RoleUser}

	reserved := "me"
	_, err := service.UpdateMe(context.Background(), actor, account.ProfileInput{Username: &reserved})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
