package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritika-app/kritika/internal/platform/request"
	"github.com/kritika-app/kritika/internal/platform/respond"
	"github.com/kritika-app/kritika/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	page := pagination.FromRequest(httpRequest)
	search := httpRequest.URL.Query().Get("search")

	terms, total, err := handler.service.List(httpRequest.Context(), search, page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, terms, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	var input CreateInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	term, err := handler.service.Create(httpRequest.Context(), request.Actor(httpRequest), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, term)
}

func (handler *Handler) delete(writer http.ResponseWriter, httpRequest *http.Request) {
	slugValue := request.Param(httpRequest, "slug")

	if err := handler.service.Delete(httpRequest.Context(), request.Actor(httpRequest), slugValue); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}
