package title

import (
	"context"

	"github.com/kritika-app/kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error)
	GetByID(context context.Context, id string) (*Title, error)
	Exists(context context.Context, id string) (bool, error)
	Create(context context.Context, title *Title, categoryID *string, genreIDs []string) error
	Update(context context.Context, title *Title, categoryID *string, genreIDs []string, replaceGenres bool) error
	Delete(context context.Context, id string) (bool, error)
}
