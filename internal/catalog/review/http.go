package review

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

// RegisterRoutes mounts the review tree. It expects to be mounted under
// /titles/{titleID}/reviews so the title ID is available as a URL parameter.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)
	router.Get("/{reviewID}", handler.getReview)
	router.Patch("/{reviewID}", handler.updateReview)
	router.Delete("/{reviewID}", handler.deleteReview)

	router.Route("/{reviewID}/comments", func(comments chi.Router) {
		comments.Get("/", handler.listComments)
		comments.Post("/", handler.createComment)
		comments.Get("/{commentID}", handler.getComment)
		comments.Patch("/{commentID}", handler.updateComment)
		comments.Delete("/{commentID}", handler.deleteComment)
	})
}

// # Review Handlers

func (handler *Handler) listReviews(writer http.ResponseWriter, httpRequest *http.Request) {
	page := pagination.FromRequest(httpRequest)
	titleID := request.Param(httpRequest, "titleID")

	reviews, total, err := handler.service.ListReviews(httpRequest.Context(), titleID, page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, httpRequest *http.Request) {
	review, err := handler.service.GetReview(httpRequest.Context(),
		request.Param(httpRequest, "titleID"), request.Param(httpRequest, "reviewID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, review)
}

func (handler *Handler) createReview(writer http.ResponseWriter, httpRequest *http.Request) {
	var input ReviewInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	review, err := handler.service.CreateReview(httpRequest.Context(),
		request.Actor(httpRequest), request.Param(httpRequest, "titleID"), input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, httpRequest *http.Request) {
	var patch ReviewPatch
	if err := request.DecodeJSON(httpRequest, &patch); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	review, err := handler.service.UpdateReview(httpRequest.Context(),
		request.Actor(httpRequest),
		request.Param(httpRequest, "titleID"), request.Param(httpRequest, "reviewID"),
		patch)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, httpRequest *http.Request) {
	err := handler.service.DeleteReview(httpRequest.Context(),
		request.Actor(httpRequest),
		request.Param(httpRequest, "titleID"), request.Param(httpRequest, "reviewID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.NoContent(writer)
}

// # Comment Handlers

func (handler *Handler) listComments(writer http.ResponseWriter, httpRequest *http.Request) {
	page := pagination.FromRequest(httpRequest)

	comments, total, err := handler.service.ListComments(httpRequest.Context(),
		request.Param(httpRequest, "titleID"), request.Param(httpRequest, "reviewID"), page)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, httpRequest *http.Request) {
	comment, err := handler.service.GetComment(httpRequest.Context(),
		request.Param(httpRequest, "titleID"),
		request.Param(httpRequest, "reviewID"),
		request.Param(httpRequest, "commentID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, httpRequest *http.Request) {
	var input CommentInput
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	comment, err := handler.service.CreateComment(httpRequest.Context(),
		request.Actor(httpRequest),
		request.Param(httpRequest, "titleID"), request.Param(httpRequest, "reviewID"),
		input)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, httpRequest *http.Request) {
	var patch CommentPatch
	if err := request.DecodeJSON(httpRequest, &patch); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	comment, err := handler.service.UpdateComment(httpRequest.Context(),
		request.Actor(httpRequest),
		request.Param(httpRequest, "titleID"),
		request.Param(httpRequest, "reviewID"),
		request.Param(httpRequest, "commentID"),
		patch)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, httpRequest *http.Request) {
	err := handler.service.DeleteComment(httpRequest.Context(),
		request.Actor(httpRequest),
		request.Param(httpRequest, "titleID"),
		request.Param(httpRequest, "reviewID"),
		request.Param(httpRequest, "commentID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}
	respond.NoContent(writer)
}
