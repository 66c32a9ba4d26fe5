// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kritika-app/kritika/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unique-constraint mapping (SQLSTATE 23505)
	if field, ok := UniqueViolationField(err); ok {
		return apperr.Conflict(
			"Value is already in use. Use another "+field+".",
			apperr.FieldError{Field: field, Message: "Already in use"},
		)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// UniqueViolationField reports whether err is a Postgres unique-constraint
// violation and, if so, which field the violated constraint covers.
//
// Constraint naming convention: every unique constraint in the schema is
// named <table>_<column>_key (Postgres default), so the column name is
// recoverable from the constraint for field attribution.
func UniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}
	return fieldFromConstraint(pgErr.ConstraintName), true
}

// fieldFromConstraint extracts the column segment from a default-named
// Postgres unique constraint ("account_username_key" → "username").
func fieldFromConstraint(constraint string) string {
	const suffix = "_key"
	name := constraint

	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		name = name[:len(name)-len(suffix)]
	}

	// Strip the leading table segment.
	for i := 0; i < len(name); i++ {
		if name[i] == '_' {
			return name[i+1:]
		}
	}

	return name
}
