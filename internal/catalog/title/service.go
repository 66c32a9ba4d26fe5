package title

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kritika-app/kritika/internal/catalog/taxonomy"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/pkg/pagination"
	"github.com/kritika-app/kritika/pkg/uuid"
)

const maxNameLength = 256

type Service struct {
	repo       Repository
	categories taxonomy.Repository
	genres     taxonomy.Repository
	logger     *slog.Logger
}

func NewService(repo Repository, categories, genres taxonomy.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	return service.repo.List(context, filter, page)
}

func (service *Service) Get(context context.Context, id string) (*Title, error) {
	title, err := service.repo.GetByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Title")
		}
		return nil, err
	}
	return title, nil
}

func (service *Service) Create(context context.Context, actor *sec.Actor, input CreateInput) (*Title, error) {
	if err := service.checkWrite(actor, http.MethodPost); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		Custom("year", input.Year <= 0, "This field is required").
		MaxInt("year", input.Year, time.Now().Year()).
		Required("category", input.Category)
	if err := v.Err(); err != nil {
		return nil, err
	}

	categoryTerm, err := service.resolveCategory(context, input.Category)
	if err != nil {
		return nil, err
	}

	genreTerms, genreIDs, err := service.resolveGenres(context, input.Genre)
	if err != nil {
		return nil, err
	}

	title := &Title{
		ID:          uuid.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if err := service.repo.Create(context, title, &categoryTerm.ID, genreIDs); err != nil {
		return nil, err
	}

	// Hydrate the response from the already-resolved terms.
	title.Category = categoryTerm
	title.Genres = genreTerms

	service.logger.InfoContext(context, "title_created",
		slog.String("title_id", title.ID),
		slog.String("name", title.Name),
	)

	return title, nil
}

func (service *Service) Update(context context.Context, actor *sec.Actor, id string, input UpdateInput) (*Title, error) {
	if err := service.checkWrite(actor, http.MethodPatch); err != nil {
		return nil, err
	}

	existing, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	// Apply the patch over the current state.
	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Year != nil {
		existing.Year = *input.Year
	}
	if input.Description != nil {
		existing.Description = input.Description
	}

	v := &validate.Validator{}
	v.Required("name", existing.Name).
		MaxLen("name", existing.Name, maxNameLength).
		Custom("year", existing.Year <= 0, "This field is required").
		MaxInt("year", existing.Year, time.Now().Year())
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Resolve the category reference: patched slug wins, otherwise keep the
	// currently linked category (which may be absent after a deletion).
	var categoryID *string
	if input.Category != nil {
		categoryTerm, err := service.resolveCategory(context, *input.Category)
		if err != nil {
			return nil, err
		}
		categoryID = &categoryTerm.ID
	} else if existing.Category != nil {
		categoryTerm, err := service.resolveCategory(context, existing.Category.Slug)
		if err != nil {
			return nil, err
		}
		categoryID = &categoryTerm.ID
	}

	var genreIDs []string
	replaceGenres := false
	if input.Genre != nil {
		_, resolved, err := service.resolveGenres(context, *input.Genre)
		if err != nil {
			return nil, err
		}
		genreIDs = resolved
		replaceGenres = true
	}

	if err := service.repo.Update(context, existing, categoryID, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_updated", slog.String("title_id", id))

	// Re-read for a fully hydrated response (genres, category, rating).
	return service.Get(context, id)
}

func (service *Service) Delete(context context.Context, actor *sec.Actor, id string) error {
	if err := service.checkWrite(actor, http.MethodDelete); err != nil {
		return err
	}

	deleted, err := service.repo.Delete(context, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Title")
	}

	service.logger.InfoContext(context, "title_deleted", slog.String("title_id", id))
	return nil
}

// resolveCategory maps a category slug to its stored term. An unknown slug is
// a client error attributed to the 'category' field, not a 404.
func (service *Service) resolveCategory(context context.Context, slug string) (*taxonomy.Term, error) {
	term, err := service.categories.GetBySlug(context, slug)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "category",
				Message: fmt.Sprintf("Unknown slug: %s", slug),
			})
		}
		return nil, err
	}
	return term, nil
}

// resolveGenres maps genre slugs to stored terms, preserving order and
// skipping duplicates.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]taxonomy.Term, []string, error) {
	terms := make([]taxonomy.Term, 0, len(slugs))
	ids := make([]string, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))

	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true

		term, err := service.genres.GetBySlug(context, slug)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, nil, apperr.ValidationError("Validation failed", apperr.FieldError{
					Field:   "genre",
					Message: fmt.Sprintf("Unknown slug: %s", slug),
				})
			}
			return nil, nil, err
		}

		terms = append(terms, *term)
		ids = append(ids, term.ID)
	}

	return terms, ids, nil
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
