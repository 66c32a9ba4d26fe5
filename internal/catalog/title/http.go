package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritika-app/kritika/internal/platform/request"
	"github.com/kritika-app/kritika/internal/platform/respond"
	"github.com/kritika-app/kritika/pkg/pagination"
	"github.com/kritika-app/kritika/pkg/query"
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
	router.Get("/{titleID}", handler.get)
	router.Patch("/{titleID}", handler.update)
	router.Delete("/{titleID}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	page := pagination.FromRequest(httpRequest)
	params := httpRequest.URL.Query()

	filter := Filter{
		Name:     params.Get("name"),
		Genre:    params.Get("genre"),
		Category: params.Get("category"),
	}
	if year, ok := query.Int(params.Get("year")); ok {
		filter.Year = &year
	}

	titles, total, err := handler.service.List(httpRequest.Context(), filter, page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	title, err := handler.service.Get(httpRequest.Context(), request.Param(httpRequest, "titleID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	var input CreateInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	title, err := handler.service.Create(httpRequest.Context(), request.Actor(httpRequest), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	var input UpdateInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	title, err := handler.service.Update(httpRequest.Context(), request.Actor(httpRequest), request.Param(httpRequest, "titleID"), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) delete(writer http.ResponseWriter, httpRequest *http.Request) {
	err := handler.service.Delete(httpRequest.Context(), request.Actor(httpRequest), request.Param(httpRequest, "titleID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.NoContent(writer)
}
