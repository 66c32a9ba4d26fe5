// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

/*
Package account handles user management and profile self-service.

It provides the administrator-facing user CRUD surface and the /users/me
endpoints through which members view and update their own profile.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Administrative operations require the admin role (or staff
    flag); self-service operations can never escalate privileges.
*/
package account

import (
	"context"

	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user management.
type AccountRepository interface {
	/*
		List returns a paginated page of users and the total count.

		Parameters:
		  - context: context.Context
		  - search: string (Substring match on username; empty means all)
		  - page: pagination.Params

		Returns:
		  - []*auth.User: Page of accounts ordered by username
		  - int: Total count matching the search
		  - error: Retrieval failures
	*/
	List(context context.Context, search string, page pagination.Params) ([]*auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Create persists a new administrator-provisioned account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete removes an account permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - bool: Whether a row was removed
		  - error: Execution failures
	*/
	Delete(context context.Context, id string) (bool, error)
}

// # Inputs

// CreateInput defines an administrator-provisioned account. Role defaults to
// the regular user role when omitted.
type CreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateInput defines the administrator patch surface. Nil fields are left
// unchanged.
type UpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// ProfileInput defines the self-service patch surface. It deliberately has
// no role field: members cannot change their own privileges.
type ProfileInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}
