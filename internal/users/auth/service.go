// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

/*
Package auth implements the passwordless identity flow.

Enrollment is a two-step exchange:

  - Signup: the client posts a username and email; the service creates the
    account if needed and delivers a short confirmation code out-of-band.
  - Token: the client posts the username and code; on a match the service
    issues an RSA-signed JWT access token.

Architecture:

  - Service: Orchestrates business logic (Signup, IssueToken).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Codes).
  - Security: Bcrypt-hashed codes and RSA-signed JWTs.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/pkg/uuid"
)

// usernameRegex mirrors the constraint enforced at the database level:
// word characters plus the . @ + - set.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - staff: Whether the account carries the staff flag.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, staff bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token issuance use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation,
// hashing, or token logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	notifier       Notifier
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	notifier Notifier,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		notifier:       notifier,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers a user (or recognizes an existing one) and delivers a fresh
confirmation code.

Description: The operation is idempotent for a matching (username, email)
pair: repeating it simply issues a new code, so users who lost the first
email can self-serve. A collision on either field alone is rejected with the
error attributed to the offending field.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupInput: Echo of the accepted identity pair
  - error: Validation, conflict, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupInput, error) {
	if err := ValidateIdentity(input.Username, input.Email); err != nil {
		return nil, err
	}

	user, err := service.resolveAccount(context, input)
	if err != nil {
		return nil, err
	}

	// Generate a fresh code. Reissuing invalidates any previous code for
	// this username since the Redis key is overwritten.
	code, err := sec.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	codeHash, err := sec.HashConfirmationCode(code)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.Username, codeHash, ConfirmationCodeTTL); err != nil {
		return nil, err
	}

	if err := service.notifier.SendConfirmationCode(context, user.Email, user.Username, code); err != nil {
		// Delivery failure must not leave a live code the user never saw.
		_ = service.codeRepository.Delete(context, user.Username)
		return nil, fmt.Errorf("auth_service_code_delivery_failed: %w", err)
	}

	service.logger.InfoContext(context, "signup_code_sent",
		slog.String("username", user.Username),
	)

	return &SignupInput{Username: user.Username, Email: user.Email}, nil
}

// resolveAccount finds the account matching the signup identity or creates
// one. Partial matches are field-attributed conflicts.
func (service *Service) resolveAccount(context context.Context, input SignupInput) (*User, error) {

	// 1. Exact (username, email) match means a returning user.
	byUsername, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		if byUsername.Email != input.Email {
			return nil, apperr.Conflict(
				"A user with this username already exists.",
				apperr.FieldError{Field: FieldUsername, Message: "Already in use"},
			)
		}
		return byUsername, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// 2. The username is free; the email must be too.
	_, err = service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict(
			"A user with this email already exists.",
			apperr.FieldError{Field: FieldEmail, Message: "Already in use"},
		)
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// 3. Enroll a brand-new account with the default role.
	user := &User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered",
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Token Flow

// TokenInput holds the credentials for the code-for-token exchange.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// TokenOutput carries the issued JWT under the "access" key.
type TokenOutput struct {
	Access string `json:"access"`
}

/*
IssueToken exchanges a valid confirmation code for a JWT access token.

Description: An unknown username is a 404 so that clients can distinguish
"never signed up" from "wrong code" (a 400). Codes are single use: the Redis
entry is deleted the moment a match succeeds.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenOutput: Signed access token
  - error: NotFound, validation, or signing errors
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (*TokenOutput, error) {
	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Unknown username: 404, per the signup-first contract.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	// A missing, expired, or mismatched code is the same client error.
	invalidCode := apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldConfirmationCode,
		Message: "Invalid confirmation code",
	})

	codeHash, err := service.codeRepository.Get(context, user.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, invalidCode
		}
		return nil, err
	}

	if !sec.CheckConfirmationCode(input.ConfirmationCode, codeHash) {
		return nil, invalidCode
	}

	// Single use: burn the code before handing out the token.
	if err := service.codeRepository.Delete(context, user.Username); err != nil {
		return nil, err
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.IsStaff, AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_sign_failed: %w", err)
	}

	service.logger.InfoContext(context, "access_token_issued",
		slog.String("username", user.Username),
	)

	return &TokenOutput{Access: token}, nil
}

// # Validation

// ValidateIdentity applies the shared username and email rules. It is also
// used by the admin user-management endpoints, which accept the same
// identity pair.
func ValidateIdentity(username, email string) error {
	v := &validate.Validator{}
	v.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, UsernameMaxLength).
		Pattern(FieldUsername, username, usernameRegex, "May contain only letters, digits and @/./+/-/_ characters").
		Custom(FieldUsername, username == ReservedUsernameMe, `Username "me" is reserved`).
		Required(FieldEmail, email).
		MaxLen(FieldEmail, email, EmailMaxLength).
		Email(FieldEmail, email)
	return v.Err()
}
