// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/pagination"
	"github.com/kritika-app/kritika/pkg/uuid"
)

// # Service Layer

// Service orchestrates user management and profile self-service.
//
// All administrative entry points re-check the actor even though the router
// already guards them: services must stay safe when called from other code
// paths (seeders, future RPC surfaces).
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Administrative User Management

/*
List returns a page of accounts for the admin console.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - search: string (Username substring; empty lists everyone)
  - page: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total count
  - error: Authorization or retrieval failures
*/
func (service *Service) List(context context.Context, actor *sec.Actor, search string, page pagination.Params) ([]*auth.User, int, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, 0, err
	}
	return service.accountRepository.List(context, search, page)
}

/*
Create provisions an account on behalf of an administrator.

Description: Unlike signup, no confirmation code is issued; the account is
immediately usable once its owner completes the signup flow with the same
identity pair.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: CreateInput

Returns:
  - *auth.User: Created entity
  - error: Authorization, validation, or conflict failures
*/
func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*auth.User, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	if err := auth.ValidateIdentity(input.Username, input.Email); err != nil {
		return nil, err
	}

	role := sec.RoleUser
	if input.Role != "" {
		role = sec.UserRole(input.Role)
	}

	v := &validate.Validator{}
	v.MaxLen(auth.FieldFirstName, input.FirstName, auth.NameMaxLength).
		MaxLen(auth.FieldLastName, input.LastName, auth.NameMaxLength).
		Custom(auth.FieldRole, !role.IsValid(), "Must be one of: user, moderator, admin")
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_provisioned",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
Get returns a single account by username.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string

Returns:
  - *auth.User: Loaded entity
  - error: Authorization or lookup failures
*/
func (service *Service) Get(context context.Context, actor *sec.Actor, username string) (*auth.User, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}
	return service.accountRepository.FindByUsername(context, username)
}

/*
Update applies an administrator patch to an account, including role changes.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: Updated entity
  - error: Authorization, validation, or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.Actor, username string, input UpdateInput) (*auth.User, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(user, ProfileInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})

	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	if err := validateAccount(user); err != nil {
		return nil, err
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_updated", slog.String("username", user.Username))
	return user, nil
}

/*
Delete removes an account permanently.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - username: string

Returns:
  - error: Authorization, lookup, or deletion failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Actor, username string) error {
	if err := checkAdmin(actor); err != nil {
		return err
	}

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	deleted, err := service.accountRepository.Delete(context, user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("User")
	}

	service.logger.InfoContext(context, "user_deleted", slog.String("username", username))
	return nil
}

// # Profile Self-Service

/*
Me returns the authenticated caller's own profile.

Parameters:
  - context: context.Context
  - actor: *sec.Actor

Returns:
  - *auth.User: The caller's profile
  - error: Unauthorized or lookup failures
*/
func (service *Service) Me(context context.Context, actor *sec.Actor) (*auth.User, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.accountRepository.FindByID(context, actor.UserID)
}

/*
UpdateMe applies a self-service patch to the caller's profile.

Description: The input type has no role or staff fields, so privilege
escalation through this endpoint is impossible by construction.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: ProfileInput

Returns:
  - *auth.User: Updated profile
  - error: Unauthorized, validation, or storage failures
*/
func (service *Service) UpdateMe(context context.Context, actor *sec.Actor, input ProfileInput) (*auth.User, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	user, err := service.accountRepository.FindByID(context, actor.UserID)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(user, input)

	if err := validateAccount(user); err != nil {
		return nil, err
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profile_updated", slog.String("username", user.Username))
	return user, nil
}

// # Helpers

// applyProfilePatch copies the provided fields over the current state.
func applyProfilePatch(user *auth.User, input ProfileInput) {
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
}

// validateAccount re-checks the full entity after a patch.
func validateAccount(user *auth.User) error {
	if err := auth.ValidateIdentity(user.Username, user.Email); err != nil {
		return err
	}

	v := &validate.Validator{}
	v.MaxLen(auth.FieldFirstName, user.FirstName, auth.NameMaxLength).
		MaxLen(auth.FieldLastName, user.LastName, auth.NameMaxLength).
		Custom(auth.FieldRole, !user.Role.IsValid(), "Must be one of: user, moderator, admin")
	return v.Err()
}

// checkAdmin enforces the admin-only policy on user management.
func checkAdmin(actor *sec.Actor) error {
	if sec.AdminOnly(actor) {
		return nil
	}
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("Administrator access required")
}
