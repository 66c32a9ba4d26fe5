// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// There is no refresh-token flow: an expired token means the client
	// repeats the signup/token exchange.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeTTL is the duration a confirmation code remains valid.
	// Long-lived (24 hours) as users might not check email immediately.
	ConfirmationCodeTTL = 24 * time.Hour

	// UsernameMaxLength bounds the username column.
	UsernameMaxLength = 150

	// EmailMaxLength follows the RFC 5321 practical limit.
	EmailMaxLength = 254

	// NameMaxLength bounds the first and last name columns.
	NameMaxLength = 150

	// ReservedUsernameMe is rejected at signup because /users/me routes to
	// the caller's own profile.
	ReservedUsernameMe = "me"
)
