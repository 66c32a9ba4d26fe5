// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

/*
Package auth implements the user identity layer: signup, confirmation codes,
and access-token issuance.

It defines the core domain entity (User) and the logic for the two-step,
passwordless enrollment flow.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/kritika-app/kritika/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kritika platform.
//
// There are no passwords: authentication is a two-step flow where a
// confirmation code is delivered out-of-band and exchanged for a JWT.
// The public identifier is the username; the UUID primary key stays internal.
type User struct {
	ID        string       `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`
	IsStaff   bool         `json:"-"` // Staff grants admin capability. Never exposed or client-settable.
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
	FieldAccess           = "access"
)
