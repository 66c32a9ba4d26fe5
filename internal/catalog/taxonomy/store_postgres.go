package taxonomy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/platform/database/schema"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// tableRef abstracts over the category and genre tables, which share an
// identical column layout.
type tableRef struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

type PostgresRepository struct {
	db    *pgxpool.Pool
	table tableRef
}

// NewCategoryPostgresRepository returns a repository bound to catalog.category.
func NewCategoryPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, table: tableRef{
		Table:     schema.CatalogCategory.Table,
		ID:        schema.CatalogCategory.ID,
		Name:      schema.CatalogCategory.Name,
		Slug:      schema.CatalogCategory.Slug,
		CreatedAt: schema.CatalogCategory.CreatedAt,
	}}
}

// NewGenrePostgresRepository returns a repository bound to catalog.genre.
func NewGenrePostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, table: tableRef{
		Table:     schema.CatalogGenre.Table,
		ID:        schema.CatalogGenre.ID,
		Name:      schema.CatalogGenre.Name,
		Slug:      schema.CatalogGenre.Slug,
		CreatedAt: schema.CatalogGenre.CreatedAt,
	}}
}

func (repository *PostgresRepository) List(context context.Context, search string, page pagination.Params) ([]*Term, int, error) {
	args := []interface{}{}
	whereClause := ""

	// Optional case-insensitive substring match on the display name.
	if search != "" {
		args = append(args, "%"+search+"%")
		whereClause = fmt.Sprintf("WHERE %s ILIKE $1", repository.table.Name)
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COUNT(*) OVER() AS total
		FROM %s
		%s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d
	`,
		repository.table.ID, repository.table.Name, repository.table.Slug, repository.table.CreatedAt,
		repository.table.Table,
		whereClause,
		repository.table.Name,
		len(args)-1, len(args),
	)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_terms")
	}
	defer rows.Close()

	terms := make([]*Term, 0)
	total := 0

	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug, &term.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_term")
		}
		terms = append(terms, term)
	}

	return terms, total, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Term, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		repository.table.ID, repository.table.Name, repository.table.Slug, repository.table.CreatedAt,
		repository.table.Table, repository.table.Slug)

	term := &Term{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&term.ID, &term.Name, &term.Slug, &term.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_term_by_slug")
	}

	return term, nil
}

func (repository *PostgresRepository) Create(context context.Context, term *Term) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		repository.table.Table,
		repository.table.ID, repository.table.Name, repository.table.Slug,
		repository.table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, term.ID, term.Name, term.Slug).Scan(&term.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_term")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		repository.table.Table, repository.table.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return false, dberr.Wrap(err, "delete_term")
	}

	return tag.RowsAffected() > 0, nil
}
