// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/chiaweilin/meihe/internal/platform/validate"
	"github.com/chiaweilin/meihe/pkg/slug"
)

const (
	FieldTitle   = "title"
	FieldTitleZh = "title_zh"
	FieldSlug    = "slug"
)

// # Service Layer

// Service orchestrates the business logic for news articles.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a news [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns a filtered page of articles, most recently published first.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// Get retrieves one article by ID.
func (service *Service) Get(ctx context.Context, id int) (*Article, error) {
	return service.repo.FindByID(ctx, id)
}

// GetBySlug retrieves one article by its URL slug.
func (service *Service) GetBySlug(ctx context.Context, s string) (*Article, error) {
	return service.repo.FindBySlug(ctx, s)
}

/*
Create persists a new article.

Description: The slug is derived from the English title when omitted. An
article created as published gets its publication timestamp stamped now
unless the client supplied one.

Returns:
  - error: Validation, duplicate-slug conflict, or persistence errors
*/
func (service *Service) Create(ctx context.Context, article *Article) error {
	if article.Slug == "" {
		article.Slug = slug.From(article.Title)
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, article.Title)
	v.Required(FieldTitleZh, article.TitleZh)
	v.Required(FieldSlug, article.Slug)
	v.Slug(FieldSlug, article.Slug)
	if err := v.Err(); err != nil {
		return err
	}

	if article.IsPublished && article.PublishedAt == nil {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	if err := service.repo.Create(ctx, article); err != nil {
		return err
	}

	service.logger.Info("news_created",
		slog.Int("news_id", article.ID),
		slog.String("slug", article.Slug),
	)

	return nil
}

// Patch carries the editable article fields for a partial update.
// Nil means "leave unchanged".
type Patch struct {
	Title         *string
	TitleZh       *string
	Slug          *string
	Summary       *string
	SummaryZh     *string
	Content       *string
	ContentZh     *string
	FeaturedImage *string
	Category      *string
	IsPublished   *bool
	PublishedAt   *time.Time
}

/*
Update applies a partial update.

Description: Flipping an article to published for the first time stamps its
publication timestamp.

Returns:
  - *Article: The updated article
  - error: NotFound, validation, or persistence errors
*/
func (service *Service) Update(ctx context.Context, id int, patch Patch) (*Article, error) {
	article, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.TitleZh != nil {
		article.TitleZh = *patch.TitleZh
	}
	if patch.Slug != nil {
		article.Slug = *patch.Slug
	}
	if patch.Summary != nil {
		article.Summary = patch.Summary
	}
	if patch.SummaryZh != nil {
		article.SummaryZh = patch.SummaryZh
	}
	if patch.Content != nil {
		article.Content = patch.Content
	}
	if patch.ContentZh != nil {
		article.ContentZh = patch.ContentZh
	}
	if patch.FeaturedImage != nil {
		article.FeaturedImage = patch.FeaturedImage
	}
	if patch.Category != nil {
		article.Category = patch.Category
	}
	if patch.IsPublished != nil {
		article.IsPublished = *patch.IsPublished
	}
	if patch.PublishedAt != nil {
		article.PublishedAt = patch.PublishedAt
	}

	if article.IsPublished && article.PublishedAt == nil {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, article.Title)
	v.Required(FieldTitleZh, article.TitleZh)
	v.Slug(FieldSlug, article.Slug)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Delete removes an article permanently.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("news_deleted", slog.Int("news_id", id))
	return nil
}
