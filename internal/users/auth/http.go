// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritika-app/kritika/internal/platform/request"
	"github.com/kritika-app/kritika/internal/platform/respond"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates an auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public authentication endpoints.
//
// Both endpoints are anonymous: signup is the entry point to the platform
// and token exchange happens before any JWT exists.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)
}

/*
signup handles POST /auth/signup.

Flow:
 1. Decode and validate the (username, email) pair.
 2. Create the account if it does not exist yet.
 3. Deliver a fresh confirmation code out-of-band.

Responses:
  - 200 OK: echo of the accepted identity pair
  - 400 Bad Request: validation failure or field-attributed collision
*/
func (handler *Handler) signup(writer http.ResponseWriter, httpRequest *http.Request) {
	var input SignupInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	accepted, err := handler.service.Signup(httpRequest.Context(), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, accepted)
}

/*
token handles POST /auth/token.

Flow:
 1. Decode and validate the (username, confirmation_code) pair.
 2. Exchange a matching code for a signed JWT.

Responses:
  - 200 OK: {"access": "<jwt>"}
  - 400 Bad Request: wrong or expired code
  - 404 Not Found: unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, httpRequest *http.Request) {
	var input TokenInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	output, err := handler.service.IssueToken(httpRequest.Context(), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, output)
}
