// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package news

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

// NewRepository constructs a PostgreSQL backed news store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// articleColumns is the SELECT list shared by every query.
func articleColumns() string {
	n := schema.News
	return strings.Join([]string{
		n.ID, n.Title, n.TitleZh, n.Slug,
		n.Summary, n.SummaryZh, n.Content, n.ContentZh,
		n.FeaturedImage, n.Category, n.IsPublished, n.PublishedAt,
		n.CreatedAt, n.UpdatedAt,
	}, ", ")
}

// scanArticle hydrates one row.
func scanArticle(row pgx.Row, extra ...any) (*Article, error) {
	var article Article
	targets := []any{
		&article.ID, &article.Title, &article.TitleZh, &article.Slug,
		&article.Summary, &article.SummaryZh, &article.Content, &article.ContentZh,
		&article.FeaturedImage, &article.Category, &article.IsPublished, &article.PublishedAt,
		&article.CreatedAt, &article.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &article, nil
}

/*
List retrieves filtered articles, most recently published first.

Returns:
  - []*Article: The matching page
  - int: Total articles matching the filter
*/
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	n := schema.News

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE 1=1
	`, articleColumns(), n.Table))

	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = TRUE", n.IsPublished))
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", n.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	// Unpublished drafts have no published_at; they sort last for admins.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC NULLS LAST", n.PublishedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list news: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	var totalCount int

	for rows.Next() {
		article, err := scanArticle(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan news article: %w", err)
		}
		articles = append(articles, article)
	}

	return articles, totalCount, nil
}

// FindByID retrieves one article.
func (repository *postgresRepository) FindByID(ctx context.Context, id int) (*Article, error) {
	return repository.findBy(ctx, schema.News.ID, id)
}

// FindBySlug retrieves one article by its URL slug.
func (repository *postgresRepository) FindBySlug(ctx context.Context, slug string) (*Article, error) {
	return repository.findBy(ctx, schema.News.Slug, slug)
}

func (repository *postgresRepository) findBy(ctx context.Context, column string, value any) (*Article, error) {
	n := schema.News
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, articleColumns(), n.Table, column)

	article, err := scanArticle(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("news article")
		}
		return nil, fmt.Errorf("postgres: failed to find news article: %w", err)
	}

	return article, nil
}

/*
Create inserts a new article and backfills its generated identity.

Returns:
  - error: Conflict for duplicate slugs
*/
func (repository *postgresRepository) Create(ctx context.Context, article *Article) error {
	n := schema.News
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING %s, %s, %s
	`,
		n.Table,
		n.Title, n.TitleZh, n.Slug, n.Summary, n.SummaryZh, n.Content, n.ContentZh,
		n.FeaturedImage, n.Category, n.IsPublished, n.PublishedAt,
		n.ID, n.CreatedAt, n.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		article.Title, article.TitleZh, article.Slug,
		article.Summary, article.SummaryZh, article.Content, article.ContentZh,
		article.FeaturedImage, article.Category, article.IsPublished, article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create news article")
	}

	return nil
}

// Update overwrites an article's editable columns.
func (repository *postgresRepository) Update(ctx context.Context, article *Article) error {
	n := schema.News
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = NOW()
		WHERE %s = $12
	`,
		n.Table,
		n.Title, n.TitleZh, n.Slug, n.Summary, n.SummaryZh, n.Content, n.ContentZh,
		n.FeaturedImage, n.Category, n.IsPublished, n.PublishedAt, n.UpdatedAt,
		n.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		article.Title, article.TitleZh, article.Slug,
		article.Summary, article.SummaryZh, article.Content, article.ContentZh,
		article.FeaturedImage, article.Category, article.IsPublished, article.PublishedAt,
		article.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update news article")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("news article")
	}

	return nil
}

// Delete removes an article permanently.
func (repository *postgresRepository) Delete(ctx context.Context, id int) error {
	n := schema.News
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, n.Table, n.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete news article: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("news article")
	}

	return nil
}
