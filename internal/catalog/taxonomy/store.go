package taxonomy

import (
	"context"

	"github.com/kritika-app/kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, search string, page pagination.Params) ([]*Term, int, error)
	GetBySlug(context context.Context, slug string) (*Term, error)
	Create(context context.Context, term *Term) error
	DeleteBySlug(context context.Context, slug string) (bool, error)
}
