// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package apperr_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/apperr"
)

/*
TestNotFound_Message verifies that NotFound composes the client message from
the resource noun. Call sites must pass a noun, not a full sentence.
*/
func TestNotFound_Message(t *testing.T) {
	tests := []struct {
		resource string
		want     string
	}{
		{"Title", "Title not found"},
		{"User", "User not found"},
		{"Confirmation code", "Confirmation code not found"},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			err := apperr.NotFound(tt.resource)

			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, "NOT_FOUND", err.Code)
			assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
			assert.True(t, apperr.IsNotFound(err))
		})
	}
}

/*
TestAs verifies extraction of the typed error from a wrapped chain.
*/
func TestAs(t *testing.T) {
	inner := apperr.Forbidden("Insufficient permissions")

	ae := apperr.As(inner)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	assert.Nil(t, apperr.As(nil))
}
