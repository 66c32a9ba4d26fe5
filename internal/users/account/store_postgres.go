// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// PostgresAccountRepository implements AccountRepository using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const userColumns = `id, username, email, firstname, lastname, bio, role, isstaff, createdat, updatedat`

func scanUser(row pgx.Row, extra ...any) (*auth.User, error) {
	user := &auth.User{}
	dest := []any{
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return user, nil
}

/*
List returns a username-ordered page of accounts plus the total count.

Description: Uses COUNT(*) OVER() so search and pagination need one query.

Parameters:
  - context: context.Context
  - search: string
  - page: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total count matching the search
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, search string, page pagination.Params) ([]*auth.User, int, error) {
	args := []any{}
	whereClause := ""

	if search != "" {
		args = append(args, "%"+search+"%")
		whereClause = "WHERE username ILIKE $1"
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM users.account
		%s
		ORDER BY username ASC
		LIMIT $%d OFFSET $%d
	`, userColumns, whereClause, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	totalCount := 0

	for rows.Next() {
		user, err := scanUser(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, totalCount, nil
}

/*
FindByID retrieves a user record by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Loaded account entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE id = $1`, userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Loaded account entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE username = $1`, userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
Create persists a new administrator-provisioned account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Field-attributed conflicts or connectivity errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, firstname, lastname, bio, role, isstaff, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsStaff,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "create_account")
	}

	return nil
}

/*
Update persists changes to the mutable account fields.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Field-attributed conflicts or connectivity errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET username = $2, email = $3, firstname = $4, lastname = $5,
			bio = $6, role = $7, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	).Scan(&user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "update_account")
	}

	return nil
}

/*
Delete removes an account permanently. Reviews and comments written by the
user are removed by the schema-level cascade.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: Whether a row was removed
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) (bool, error) {
	const query = `DELETE FROM users.account WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_account")
	}

	return tag.RowsAffected() > 0, nil
}
