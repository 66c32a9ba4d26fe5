package taxonomy

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/pkg/pagination"
	"github.com/kritika-app/kritika/pkg/slug"
	"github.com/kritika-app/kritika/pkg/uuid"
)

const (
	maxNameLength = 256
	maxSlugLength = 50
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	label  string
}

// NewService builds a taxonomy service. The label ("Category" or "Genre")
// is used in client-facing error messages.
func NewService(repo Repository, logger *slog.Logger, label string) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		label:  label,
	}
}

func (service *Service) List(context context.Context, search string, page pagination.Params) ([]*Term, int, error) {
	return service.repo.List(context, search, page)
}

func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*Term, error) {
	if err := service.checkWrite(actor, http.MethodPost); err != nil {
		return nil, err
	}

	// Derive the slug from the name when the client omits it.
	slugValue := input.Slug
	if slugValue == "" {
		slugValue = slug.From(input.Name)
		if len(slugValue) > maxSlugLength {
			slugValue = slugValue[:maxSlugLength]
		}
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		Required("slug", slugValue).
		MaxLen("slug", slugValue, maxSlugLength).
		Slug("slug", slugValue)
	if err := v.Err(); err != nil {
		return nil, err
	}

	term := &Term{
		ID:   uuid.New(),
		Name: input.Name,
		Slug: slugValue,
	}

	if err := service.repo.Create(context, term); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "taxonomy_term_created",
		slog.String("kind", service.label),
		slog.String("slug", term.Slug),
	)

	return term, nil
}

func (service *Service) Delete(context context.Context, actor *sec.Actor, slugValue string) error {
	if err := service.checkWrite(actor, http.MethodDelete); err != nil {
		return err
	}

	deleted, err := service.repo.DeleteBySlug(context, slugValue)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound(service.label)
	}

	service.logger.InfoContext(context, "taxonomy_term_deleted",
		slog.String("kind", service.label),
		slog.String("slug", slugValue),
	)

	return nil
}

// checkWrite enforces the admin-or-read-only policy on mutating operations.
func (service *Service) checkWrite(actor *sec.Actor, method string) error {
	if sec.AdminOrReadOnly(actor, method) {
		return nil
	}
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("Administrator access required")
}
