package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/catalog/taxonomy"
	"github.com/kritika-app/kritika/internal/platform/database/schema"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/pkg/pagination"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns is the shared projection for List and GetByID: title columns,
// the live average review score, genres aggregated as JSON, and the joined
// category (nullable).
func selectColumns() string {
	return fmt.Sprintf(`
		t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		(
			SELECT AVG(r.%s)::float8
			FROM %s r
			WHERE r.%s = t.%s
		) AS rating,
		COALESCE((
			SELECT json_agg(json_build_object('name', g.%s, 'slug', g.%s) ORDER BY g.%s)
			FROM %s g
			JOIN %s tg ON g.%s = tg.%s
			WHERE tg.%s = t.%s
		), '[]') AS genres,
		c.%s, c.%s`,
		schema.CatalogTitle.ID, schema.CatalogTitle.Name, schema.CatalogTitle.Year,
		schema.CatalogTitle.Description, schema.CatalogTitle.CreatedAt, schema.CatalogTitle.UpdatedAt,
		schema.CatalogReview.Score,
		schema.CatalogReview.Table,
		schema.CatalogReview.TitleID, schema.CatalogTitle.ID,
		schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.Name,
		schema.CatalogGenre.Table,
		schema.CatalogTitleGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogTitleGenre.GenreID,
		schema.CatalogTitleGenre.TitleID, schema.CatalogTitle.ID,
		schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
	)
}

/*
List returns a filtered, paginated slice of titles and the total count.

Description: a single round-trip query using several PostgreSQL features:
  - Window Function: COUNT(*) OVER() retrieves the total record count
    without a second query.
  - JSON Aggregation: a sub-query aggregates associated genres into a JSON
    array to prevent N+1 overhead.
  - Scalar Sub-query: the average review score is computed inline so the
    rating is always consistent with the review table.

Parameters:
  - context: context.Context
  - filter: Filter (name substring, exact year, genre/category slug)
  - page: pagination.Params

Returns:
  - []*Title: Slice of hydrated title entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		WHERE 1=1
	`,
		selectColumns(),
		schema.CatalogTitle.Table,
		schema.CatalogCategory.Table,
		schema.CatalogTitle.CategoryID, schema.CatalogCategory.ID,
	))

	// Apply Filters (Dynamic WHERE clause construction)
	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.%s ILIKE $%d", schema.CatalogTitle.Name, argID))
		args = append(args, "%"+filter.Name+"%")
		argID++
	}

	// Year Filtering
	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.%s = $%d", schema.CatalogTitle.Year, argID))
		args = append(args, *filter.Year)
		argID++
	}

	// Category Filtering (by slug of the joined category)
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CatalogCategory.Slug, argID))
		args = append(args, filter.Category)
		argID++
	}

	// Genre Filtering (membership test against the junction table)
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s tg
			JOIN %s g ON g.%s = tg.%s
			WHERE tg.%s = t.%s AND g.%s = $%d
		)`,
			schema.CatalogTitleGenre.Table,
			schema.CatalogGenre.Table,
			schema.CatalogGenre.ID, schema.CatalogTitleGenre.GenreID,
			schema.CatalogTitleGenre.TitleID, schema.CatalogTitle.ID,
			schema.CatalogGenre.Slug, argID,
		))
		args = append(args, filter.Genre)
		argID++
	}

	// Apply Sorting
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.%s ASC, t.%s DESC", schema.CatalogTitle.Name, schema.CatalogTitle.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, page.Limit, page.Offset())

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	totalCount := 0

	for rows.Next() {
		title, err := scanTitle(rows.Scan, &totalCount)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, title)
	}

	return titles, totalCount, nil
}

// GetByID returns a single fully hydrated title.
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Title, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		WHERE t.%s = $1
	`,
		selectColumns(),
		schema.CatalogTitle.Table,
		schema.CatalogCategory.Table,
		schema.CatalogTitle.CategoryID, schema.CatalogCategory.ID,
		schema.CatalogTitle.ID,
	)

	row := repository.pool.QueryRow(context, query, id)
	title, err := scanTitle(row.Scan, nil)
	if err != nil {
		return nil, err
	}

	return title, nil
}

// Exists reports whether a title with the given ID is present.
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	exists := false
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists")
	}

	return exists, nil
}

// Create inserts a title and its genre links in a single transaction.
func (repository *PostgresRepository) Create(context context.Context, title *Title, categoryID *string, genreIDs []string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CatalogTitle.Table,
		schema.CatalogTitle.ID, schema.CatalogTitle.Name, schema.CatalogTitle.Year,
		schema.CatalogTitle.Description, schema.CatalogTitle.CategoryID,
		schema.CatalogTitle.CreatedAt, schema.CatalogTitle.UpdatedAt,
	)

	err = tx.QueryRow(context, insertQuery,
		title.ID, title.Name, title.Year, title.Description, categoryID,
	).Scan(&title.CreatedAt, &title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := insertGenreLinks(context, tx, title.ID, genreIDs); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}

	return nil
}

// Update rewrites the mutable title columns. When replaceGenres is true the
// genre links are replaced wholesale with genreIDs.
func (repository *PostgresRepository) Update(context context.Context, title *Title, categoryID *string, genreIDs []string, replaceGenres bool) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogTitle.Table,
		schema.CatalogTitle.Name, schema.CatalogTitle.Year,
		schema.CatalogTitle.Description, schema.CatalogTitle.CategoryID,
		schema.CatalogTitle.UpdatedAt,
		schema.CatalogTitle.ID,
		schema.CatalogTitle.UpdatedAt,
	)

	err = tx.QueryRow(context, updateQuery,
		title.ID, title.Name, title.Year, title.Description, categoryID,
	).Scan(&title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}

	if replaceGenres {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CatalogTitleGenre.Table, schema.CatalogTitleGenre.TitleID)
		if _, err := tx.Exec(context, deleteQuery, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}

		if err := insertGenreLinks(context, tx, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}

	return nil
}

// Delete removes a title. Reviews and genre links cascade at the schema level.
func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_title")
	}

	return tag.RowsAffected() > 0, nil
}

// insertGenreLinks adds junction rows linking a title to its genres.
func insertGenreLinks(context context.Context, tx pgx.Tx, titleID string, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CatalogTitleGenre.Table,
		schema.CatalogTitleGenre.TitleID, schema.CatalogTitleGenre.GenreID,
	)

	for _, genreID := range genreIDs {
		if _, err := tx.Exec(context, query, titleID, genreID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return nil
}

// scanTitle maps one result row into a Title. totalCount is scanned only
// when non-nil (the List projection carries a trailing window-function column).
func scanTitle(scan func(dest ...any) error, totalCount *int) (*Title, error) {
	title := &Title{}
	var genresJSON []byte
	var categoryName, categorySlug *string

	dest := []any{
		&title.ID, &title.Name, &title.Year, &title.Description,
		&title.CreatedAt, &title.UpdatedAt,
		&title.Rating,
		&genresJSON,
		&categoryName, &categorySlug,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}

	if err := scan(dest...); err != nil {
		return nil, dberr.Wrap(err, "scan_title")
	}

	if err := json.Unmarshal(genresJSON, &title.Genres); err != nil {
		return nil, dberr.Wrap(err, "decode_title_genres")
	}

	if categorySlug != nil {
		title.Category = &taxonomy.Term{Name: *categoryName, Slug: *categorySlug}
	}

	return title, nil
}
