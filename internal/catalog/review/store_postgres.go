package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

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

// # Reviews

func (repository *PostgresRepository) ListReviews(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s,
			COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogReview.ID, schema.CatalogReview.TitleID, schema.CatalogReview.AuthorID,
		schema.UserAccount.Username,
		schema.CatalogReview.Text, schema.CatalogReview.Score,
		schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.Table,
		schema.UserAccount.Table,
		schema.CatalogReview.AuthorID, schema.UserAccount.ID,
		schema.CatalogReview.TitleID,
		schema.CatalogReview.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, titleID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	totalCount := 0

	for rows.Next() {
		review := &Review{}
		err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.CreatedAt, &review.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, totalCount, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID string) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1 AND r.%s = $2
	`,
		schema.CatalogReview.ID, schema.CatalogReview.TitleID, schema.CatalogReview.AuthorID,
		schema.UserAccount.Username,
		schema.CatalogReview.Text, schema.CatalogReview.Score,
		schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.Table,
		schema.UserAccount.Table,
		schema.CatalogReview.AuthorID, schema.UserAccount.ID,
		schema.CatalogReview.ID, schema.CatalogReview.TitleID,
	)

	review := &Review{}
	err := repository.pool.QueryRow(context, query, reviewID, titleID).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return review, nil
}

func (repository *PostgresRepository) HasUserReview(context context.Context, titleID, authorID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CatalogReview.Table,
		schema.CatalogReview.TitleID, schema.CatalogReview.AuthorID,
	)

	exists := false
	if err := repository.pool.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "has_user_review")
	}

	return exists, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CatalogReview.Table,
		schema.CatalogReview.ID, schema.CatalogReview.TitleID, schema.CatalogReview.AuthorID,
		schema.CatalogReview.Text, schema.CatalogReview.Score,
		schema.CatalogReview.CreatedAt, schema.CatalogReview.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}

	return nil
}

func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogReview.Table,
		schema.CatalogReview.Text, schema.CatalogReview.Score, schema.CatalogReview.UpdatedAt,
		schema.CatalogReview.ID,
		schema.CatalogReview.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, review.ID, review.Text, review.Score).Scan(&review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	return nil
}

func (repository *PostgresRepository) DeleteReview(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogReview.Table, schema.CatalogReview.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_review")
	}

	return tag.RowsAffected() > 0, nil
}

// # Comments

func (repository *PostgresRepository) ListComments(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.CatalogComment.ID, schema.CatalogComment.ReviewID, schema.CatalogComment.AuthorID,
		schema.UserAccount.Username,
		schema.CatalogComment.Text,
		schema.CatalogComment.CreatedAt, schema.CatalogComment.UpdatedAt,
		schema.CatalogComment.Table,
		schema.UserAccount.Table,
		schema.CatalogComment.AuthorID, schema.UserAccount.ID,
		schema.CatalogComment.ReviewID,
		schema.CatalogComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, reviewID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	totalCount := 0

	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, totalCount, nil
}

func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1 AND c.%s = $2
	`,
		schema.CatalogComment.ID, schema.CatalogComment.ReviewID, schema.CatalogComment.AuthorID,
		schema.UserAccount.Username,
		schema.CatalogComment.Text,
		schema.CatalogComment.CreatedAt, schema.CatalogComment.UpdatedAt,
		schema.CatalogComment.Table,
		schema.UserAccount.Table,
		schema.CatalogComment.AuthorID, schema.UserAccount.ID,
		schema.CatalogComment.ID, schema.CatalogComment.ReviewID,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, commentID, reviewID).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.CatalogComment.Table,
		schema.CatalogComment.ID, schema.CatalogComment.ReviewID, schema.CatalogComment.AuthorID,
		schema.CatalogComment.Text,
		schema.CatalogComment.CreatedAt, schema.CatalogComment.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogComment.Table,
		schema.CatalogComment.Text, schema.CatalogComment.UpdatedAt,
		schema.CatalogComment.ID,
		schema.CatalogComment.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, comment.ID, comment.Text).Scan(&comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogComment.Table, schema.CatalogComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_comment")
	}

	return tag.RowsAffected() > 0, nil
}
