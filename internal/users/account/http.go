// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritika-app/kritika/internal/platform/middleware"
	"github.com/kritika-app/kritika/internal/platform/request"
	"github.com/kritika-app/kritika/internal/platform/respond"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// Handler exposes the user management and profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /users tree.
//
// The literal /me segment is registered before the {username} wildcard;
// chi resolves static segments first, so "me" can never be shadowed by a
// username lookup. The router-level guards reject early; the service
// re-checks the same rules.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(profile chi.Router) {
		profile.Use(middleware.RequireAuth)

		profile.Get("/me", handler.me)
		profile.Patch("/me", handler.updateMe)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Get("/", handler.list)
		admin.Post("/", handler.create)

		admin.Get("/{username}", handler.get)
		admin.Patch("/{username}", handler.update)
		admin.Delete("/{username}", handler.delete)
	})
}

// # Administrative Handlers

func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	page := pagination.FromRequest(httpRequest)
	search := httpRequest.URL.Query().Get("search")

	users, total, err := handler.service.List(httpRequest.Context(), request.Actor(httpRequest), search, page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	var input CreateInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.service.Create(httpRequest.Context(), request.Actor(httpRequest), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	user, err := handler.service.Get(httpRequest.Context(), request.Actor(httpRequest), request.Param(httpRequest, "username"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	var input UpdateInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.service.Update(httpRequest.Context(), request.Actor(httpRequest), request.Param(httpRequest, "username"), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) delete(writer http.ResponseWriter, httpRequest *http.Request) {
	err := handler.service.Delete(httpRequest.Context(), request.Actor(httpRequest), request.Param(httpRequest, "username"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.NoContent(writer)
}

// # Profile Handlers

func (handler *Handler) me(writer http.ResponseWriter, httpRequest *http.Request) {
	user, err := handler.service.Me(httpRequest.Context(), request.Actor(httpRequest))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, httpRequest *http.Request) {
	var input ProfileInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.service.UpdateMe(httpRequest.Context(), request.Actor(httpRequest), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}
