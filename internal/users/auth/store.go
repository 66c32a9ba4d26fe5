// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Confirmation Code Data Access

// CodeRepository defines the volatile storage contract for confirmation codes.
//
// Codes are keyed by username and stored hashed. Expiry is enforced by the
// store (TTL), single use by the service (Delete after a successful match).
type CodeRepository interface {

	/*
		Set stores the bcrypt hash of a confirmation code under the username.

		Parameters:
		  - context: context.Context
		  - username: string
		  - codeHash: string
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, username, codeHash string, ttl time.Duration) error

	/*
		Get retrieves the stored code hash for a username.

		Description: Returns apperr.NotFound if no code is pending or it expired.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: Stored bcrypt hash
		  - error: apperr.NotFound or connectivity errors
	*/
	Get(context context.Context, username string) (string, error)

	/*
		Delete removes the pending code for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, username string) error
}
