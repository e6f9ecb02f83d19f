// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package heritage's PostgreSQL repository.

Sites are hydrated together with their category in a single LEFT JOIN; the
image gallery is stored as a JSONB array so ordering survives round-trips.
*/
package heritage

import (
	"context"
	"encoding/json"
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

// postgresRepository implements [SiteRepository] and [CategoryRepository].
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed heritage store covering both
// sites and categories.
func NewRepository(pool *pgxpool.Pool) *postgresRepository {
	return &postgresRepository{pool: pool}
}

var (
	_ SiteRepository     = (*postgresRepository)(nil)
	_ CategoryRepository = (*postgresRepository)(nil)
)

// siteColumns is the joined SELECT list shared by every site query. Category
// columns come last and may be NULL when the site is uncategorized.
func siteColumns() string {
	s, c := schema.HeritageSite, schema.HeritageCategory
	cols := []string{
		"s." + s.ID, "s." + s.Name, "s." + s.NameZh, "s." + s.Slug,
		"s." + s.Address, "s." + s.City, "s." + s.Latitude, "s." + s.Longitude,
		"s." + s.Description, "s." + s.DescriptionZh, "s." + s.History, "s." + s.HistoryZh,
		"s." + s.FeaturedImage, "s." + s.Images,
		"s." + s.DesignationLevel, "s." + s.DesignationDate, "s." + s.IsPublished,
		"s." + s.CategoryID, "s." + s.CreatedAt, "s." + s.UpdatedAt,
		"c." + c.Name, "c." + c.NameZh, "c." + c.Description,
	}
	return strings.Join(cols, ", ")
}

// scanSite hydrates one joined row, attaching the category when present.
func scanSite(row pgx.Row, extra ...any) (*Site, error) {
	var site Site
	var imagesJSON []byte
	var catName, catNameZh, catDescription *string

	targets := []any{
		&site.ID, &site.Name, &site.NameZh, &site.Slug,
		&site.Address, &site.City, &site.Latitude, &site.Longitude,
		&site.Description, &site.DescriptionZh, &site.History, &site.HistoryZh,
		&site.FeaturedImage, &imagesJSON,
		&site.DesignationLevel, &site.DesignationDate, &site.IsPublished,
		&site.CategoryID, &site.CreatedAt, &site.UpdatedAt,
		&catName, &catNameZh, &catDescription,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &site.Images); err != nil {
			return nil, fmt.Errorf("postgres: malformed images payload: %w", err)
		}
	}

	if site.CategoryID != nil && catName != nil {
		site.Category = &Category{
			ID:          *site.CategoryID,
			Name:        *catName,
			NameZh:      *catNameZh,
			Description: catDescription,
		}
	}

	return &site, nil
}

// encodeImages marshals the gallery for the JSONB column. An empty gallery
// is stored as an empty array, never NULL.
func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

// # Site Repository Implementation

/*
List retrieves filtered sites with their categories, newest first.

Parameters:
  - ctx: context.Context
  - filter: Filter (published flag, city, category)
  - limit, offset: pagination bounds

Returns:
  - []*Site: The matching page
  - int: Total sites matching the filter
  - error: Query failures
*/
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Site, int, error) {
	s, c := schema.HeritageSite, schema.HeritageCategory

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s s
		LEFT JOIN %s c ON s.%s = c.%s
		WHERE 1=1
	`, siteColumns(), s.Table, c.Table, s.CategoryID, c.ID))

	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = TRUE", s.IsPublished))
	}

	if filter.City != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", s.City, argID))
		args = append(args, filter.City)
		argID++
	}

	if filter.CategoryID > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", s.CategoryID, argID))
		args = append(args, filter.CategoryID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.%s DESC", s.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list heritage sites: %w", err)
	}
	defer rows.Close()

	var sites []*Site
	var totalCount int

	for rows.Next() {
		site, err := scanSite(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan heritage site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, totalCount, nil
}

/*
FindByID retrieves one site with its category.

Returns:
  - *Site: The hydrated site
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) FindByID(ctx context.Context, id int) (*Site, error) {
	return repository.findSiteBy(ctx, schema.HeritageSite.ID, id)
}

/*
FindBySlug retrieves one site by its URL slug.
*/
func (repository *postgresRepository) FindBySlug(ctx context.Context, slug string) (*Site, error) {
	return repository.findSiteBy(ctx, schema.HeritageSite.Slug, slug)
}

// findSiteBy runs the shared single-site lookup against one column.
func (repository *postgresRepository) findSiteBy(ctx context.Context, column string, value any) (*Site, error) {
	s, c := schema.HeritageSite, schema.HeritageCategory
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		LEFT JOIN %s c ON s.%s = c.%s
		WHERE s.%s = $1
	`, siteColumns(), s.Table, c.Table, s.CategoryID, c.ID, column)

	site, err := scanSite(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("heritage site")
		}
		return nil, fmt.Errorf("postgres: failed to find heritage site: %w", err)
	}

	return site, nil
}

/*
Create inserts a new site and backfills its generated identity.

Returns:
  - error: Conflict for duplicate slugs, otherwise persistence errors
*/
func (repository *postgresRepository) Create(ctx context.Context, site *Site) error {
	s := schema.HeritageSite
	imagesJSON, err := encodeImages(site.Images)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode images: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		RETURNING %s, %s, %s
	`,
		s.Table,
		s.Name, s.NameZh, s.Slug, s.Address, s.City, s.Latitude, s.Longitude,
		s.Description, s.DescriptionZh, s.History, s.HistoryZh, s.FeaturedImage, s.Images,
		s.DesignationLevel, s.DesignationDate, s.IsPublished, s.CategoryID,
		s.ID, s.CreatedAt, s.UpdatedAt,
	)

	err = repository.pool.QueryRow(ctx, query,
		site.Name, site.NameZh, site.Slug, site.Address, site.City, site.Latitude, site.Longitude,
		site.Description, site.DescriptionZh, site.History, site.HistoryZh, site.FeaturedImage, imagesJSON,
		site.DesignationLevel, site.DesignationDate, site.IsPublished, site.CategoryID,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create heritage site")
	}

	return nil
}

/*
Update overwrites a site's editable columns.

Returns:
  - error: apperr.NotFound when the site does not exist
*/
func (repository *postgresRepository) Update(ctx context.Context, site *Site) error {
	s := schema.HeritageSite
	imagesJSON, err := encodeImages(site.Images)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode images: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13,
			%s = $14, %s = $15, %s = $16, %s = $17, %s = NOW()
		WHERE %s = $18
	`,
		s.Table,
		s.Name, s.NameZh, s.Slug, s.Address, s.City, s.Latitude, s.Longitude,
		s.Description, s.DescriptionZh, s.History, s.HistoryZh, s.FeaturedImage, s.Images,
		s.DesignationLevel, s.DesignationDate, s.IsPublished, s.CategoryID, s.UpdatedAt,
		s.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		site.Name, site.NameZh, site.Slug, site.Address, site.City, site.Latitude, site.Longitude,
		site.Description, site.DescriptionZh, site.History, site.HistoryZh, site.FeaturedImage, imagesJSON,
		site.DesignationLevel, site.DesignationDate, site.IsPublished, site.CategoryID,
		site.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update heritage site")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("heritage site")
	}

	return nil
}

/*
Delete removes a site permanently.
*/
func (repository *postgresRepository) Delete(ctx context.Context, id int) error {
	s := schema.HeritageSite
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, s.Table, s.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete heritage site: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("heritage site")
	}

	return nil
}

// # Category Repository Implementation

/*
ListCategories returns all categories ordered by name.
*/
func (repository *postgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	c := schema.HeritageCategory
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s
	`, c.ID, c.Name, c.NameZh, c.Description, c.CreatedAt, c.UpdatedAt, c.Table, c.Name)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list heritage categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var category Category
		err := rows.Scan(&category.ID, &category.Name, &category.NameZh, &category.Description, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan heritage category: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, nil
}

/*
FindCategoryByID retrieves one category.
*/
func (repository *postgresRepository) FindCategoryByID(ctx context.Context, id int) (*Category, error) {
	c := schema.HeritageCategory
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1
	`, c.ID, c.Name, c.NameZh, c.Description, c.CreatedAt, c.UpdatedAt, c.Table, c.ID)

	var category Category
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.NameZh, &category.Description, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("heritage category")
		}
		return nil, fmt.Errorf("postgres: failed to find heritage category: %w", err)
	}

	return &category, nil
}

/*
CreateCategory inserts a new category.

Returns:
  - error: Conflict on duplicate names
*/
func (repository *postgresRepository) CreateCategory(ctx context.Context, category *Category) error {
	c := schema.HeritageCategory
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s
	`, c.Table, c.Name, c.NameZh, c.Description, c.ID, c.CreatedAt, c.UpdatedAt)

	err := repository.pool.QueryRow(ctx, query, category.Name, category.NameZh, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create heritage category")
	}

	return nil
}

/*
UpdateCategory overwrites a category's editable columns.
*/
func (repository *postgresRepository) UpdateCategory(ctx context.Context, category *Category) error {
	c := schema.HeritageCategory
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4
	`, c.Table, c.Name, c.NameZh, c.Description, c.UpdatedAt, c.ID)

	result, err := repository.pool.Exec(ctx, query, category.Name, category.NameZh, category.Description, category.ID)
	if err != nil {
		return dberr.Wrap(err, "update heritage category")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("heritage category")
	}

	return nil
}

/*
DeleteCategory removes a category. Sites referencing it keep existing with a
NULLed category (enforced by the FK's ON DELETE SET NULL).
*/
func (repository *postgresRepository) DeleteCategory(ctx context.Context, id int) error {
	c := schema.HeritageCategory
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete heritage category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("heritage category")
	}

	return nil
}
