// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/dberr"
)

/*
TestWrap_NotFound verifies the pgx.ErrNoRows to NOT_FOUND mapping.
*/
func TestWrap_NotFound(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "find_user")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestWrap_UniqueViolation verifies that unique-constraint violations become
conflicts attributed to the column named in the constraint.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantField  string
	}{
		{"username", "account_username_key", "username"},
		{"email", "account_email_key", "email"},
		{"category_slug", "category_slug_key", "slug"},
		{"genre_slug", "genre_slug_key", "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: tt.constraint,
			}

			err := dberr.Wrap(pgErr, "create")

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

/*
TestWrap_Unknown verifies that unclassified errors become internal errors
without leaking the cause message to the client.
*/
func TestWrap_Unknown(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := dberr.Wrap(cause, "list_titles")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.NotContains(t, ae.Message, "connection reset")
}

/*
TestWrap_Nil verifies the nil passthrough.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestUniqueViolationField covers non-unique-violation errors.
*/
func TestUniqueViolationField(t *testing.T) {
	_, ok := dberr.UniqueViolationField(errors.New("plain"))
	assert.False(t, ok)

	_, ok = dberr.UniqueViolationField(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	assert.False(t, ok)
}
