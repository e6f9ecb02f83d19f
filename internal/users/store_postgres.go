// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/database/schema"
	"github.com/chiaweilin/meihe/internal/platform/dberr"
	"github.com/chiaweilin/meihe/internal/platform/sec"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed account store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// userColumns is the SELECT list shared by every query.
func userColumns() string {
	u := schema.User
	return strings.Join(u.Columns(), ", ")
}

// scanUser hydrates one row.
func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

/*
List returns all accounts, newest first, with the total count.
*/
func (repository *postgresRepository) List(ctx context.Context) ([]*User, int, error) {
	u := schema.User
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`, userColumns(), u.Table, u.CreatedAt)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list users: %w", err)
	}
	defer rows.Close()

	var accounts []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan user: %w", err)
		}
		accounts = append(accounts, user)
	}

	return accounts, len(accounts), nil
}

// FindByID retrieves one account.
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findBy(ctx, schema.User.ID, id)
}

// FindByEmail retrieves one account by its unique email.
func (repository *postgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findBy(ctx, schema.User.Email, email)
}

func (repository *postgresRepository) findBy(ctx context.Context, column string, value any) (*User, error) {
	u := schema.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns(), u.Table, column)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("postgres: failed to find user: %w", err)
	}

	return user, nil
}

/*
Create inserts a new account.

Returns:
  - error: Conflict when the email is already registered
*/
func (repository *postgresRepository) Create(ctx context.Context, user *User) error {
	u := schema.User
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		u.Table,
		u.ID, u.Email, u.Password, u.Name, u.Role, u.IsActive,
		u.CreatedAt, u.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create user")
	}

	return nil
}

// Update overwrites an account's editable columns.
func (repository *postgresRepository) Update(ctx context.Context, user *User) error {
	u := schema.User
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6
	`,
		u.Table,
		u.Email, u.Password, u.Name, u.Role, u.IsActive, u.UpdatedAt,
		u.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Role, user.IsActive,
		user.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update user")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}

// Delete removes an account permanently.
func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	u := schema.User
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, u.Table, u.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}

// CountActiveSuperadmins counts accounts that can still manage accounts.
func (repository *postgresRepository) CountActiveSuperadmins(ctx context.Context) (int, error) {
	u := schema.User
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE %s = $1 AND %s = TRUE
	`, u.Table, u.Role, u.IsActive)

	var count int
	if err := repository.pool.QueryRow(ctx, query, string(sec.RoleSuperadmin)).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count superadmins: %w", err)
	}

	return count, nil
}
