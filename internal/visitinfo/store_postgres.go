// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package visitinfo

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
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed visit-info store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// sectionColumns is the SELECT list shared by every query.
func sectionColumns() string {
	v := schema.VisitInfo
	return strings.Join([]string{
		v.ID, v.Section, v.Title, v.TitleZh, v.Content, v.ContentZh,
		v.ExtraData, v.DisplayOrder, v.IsActive, v.CreatedAt, v.UpdatedAt,
	}, ", ")
}

// scanSection hydrates one row.
func scanSection(row pgx.Row) (*Section, error) {
	var section Section
	err := row.Scan(
		&section.ID, &section.Key, &section.Title, &section.TitleZh,
		&section.Content, &section.ContentZh, &section.ExtraData,
		&section.DisplayOrder, &section.IsActive, &section.CreatedAt, &section.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &section, nil
}

/*
List returns sections in display order. Inactive sections are included only
when activeOnly is false.
*/
func (repository *postgresRepository) List(ctx context.Context, activeOnly bool) ([]*Section, error) {
	v := schema.VisitInfo

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s`, sectionColumns(), v.Table))
	if activeOnly {
		queryBuilder.WriteString(fmt.Sprintf(` WHERE %s = TRUE`, v.IsActive))
	}
	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s`, v.DisplayOrder))

	rows, err := repository.pool.Query(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list visit info: %w", err)
	}
	defer rows.Close()

	var sections []*Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan visit info: %w", err)
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// FindByID retrieves one section.
func (repository *postgresRepository) FindByID(ctx context.Context, id int) (*Section, error) {
	return repository.findBy(ctx, schema.VisitInfo.ID, id)
}

// FindByKey retrieves one section by its stable key.
func (repository *postgresRepository) FindByKey(ctx context.Context, key string) (*Section, error) {
	return repository.findBy(ctx, schema.VisitInfo.Section, key)
}

func (repository *postgresRepository) findBy(ctx context.Context, column string, value any) (*Section, error) {
	v := schema.VisitInfo
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, sectionColumns(), v.Table, column)

	section, err := scanSection(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("visit info section")
		}
		return nil, fmt.Errorf("postgres: failed to find visit info: %w", err)
	}

	return section, nil
}

/*
Create inserts a new section.

Returns:
  - error: Conflict when the section key already exists
*/
func (repository *postgresRepository) Create(ctx context.Context, section *Section) error {
	v := schema.VisitInfo
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s, %s
	`,
		v.Table,
		v.Section, v.Title, v.TitleZh, v.Content, v.ContentZh, v.ExtraData, v.DisplayOrder, v.IsActive,
		v.ID, v.CreatedAt, v.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		section.Key, section.Title, section.TitleZh,
		section.Content, section.ContentZh, section.ExtraData,
		section.DisplayOrder, section.IsActive,
	).Scan(&section.ID, &section.CreatedAt, &section.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create visit info")
	}

	return nil
}

// Update overwrites a section's editable columns.
func (repository *postgresRepository) Update(ctx context.Context, section *Section) error {
	v := schema.VisitInfo
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $9
	`,
		v.Table,
		v.Section, v.Title, v.TitleZh, v.Content, v.ContentZh, v.ExtraData, v.DisplayOrder, v.IsActive, v.UpdatedAt,
		v.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		section.Key, section.Title, section.TitleZh,
		section.Content, section.ContentZh, section.ExtraData,
		section.DisplayOrder, section.IsActive,
		section.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update visit info")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("visit info section")
	}

	return nil
}

// Delete removes a section permanently.
func (repository *postgresRepository) Delete(ctx context.Context, id int) error {
	v := schema.VisitInfo
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, v.Table, v.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete visit info: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("visit info section")
	}

	return nil
}
