// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Confirmation codes are 5-digit numerics in the [10000, 99999] range,
// matching what the notification templates expect.
const (
	codeMin  = 10000
	codeSpan = 90000
)

// GenerateConfirmationCode returns a random 5-digit numeric code as a string.
func GenerateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}
	return fmt.Sprintf("%d", codeMin+n.Int64()), nil
}

// HashConfirmationCode hashes a plain confirmation code using bcrypt so the
// code is never stored in clear text.
func HashConfirmationCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckConfirmationCode compares a plain code with its stored hash using
// bcrypt's constant-time comparison.
func CheckConfirmationCode(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
