// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package sec_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/sec"
)

/*
TestGenerateConfirmationCode verifies that generated codes are 5-digit numerics.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := sec.GenerateConfirmationCode()
		require.NoError(t, err)
		require.Len(t, code, 5)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.LessOrEqual(t, n, 99999)
	}
}

/*
TestConfirmationCode_HashRoundTrip verifies hashing and constant-time comparison.
*/
func TestConfirmationCode_HashRoundTrip(t *testing.T) {
	code := "54321"

	hash, err := sec.HashConfirmationCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, sec.CheckConfirmationCode(code, hash))
	assert.False(t, sec.CheckConfirmationCode("12345", hash))
	assert.False(t, sec.CheckConfirmationCode(code, "not-a-bcrypt-hash"))
}
