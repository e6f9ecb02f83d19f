// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package heritage

import (
	"context"
	"log/slog"
	"time"

	"github.com/chiaweilin/meihe/internal/platform/validate"
	"github.com/chiaweilin/meihe/pkg/slug"
)

const (
	FieldName   = "name"
	FieldNameZh = "name_zh"
	FieldSlug   = "slug"
)

// # Service Layer

// Service orchestrates the business logic for heritage sites and categories.
type Service struct {
	siteRepo     SiteRepository
	categoryRepo CategoryRepository
	logger       *slog.Logger
}

// NewService constructs a heritage [Service].
func NewService(siteRepo SiteRepository, categoryRepo CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		siteRepo:     siteRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// # Site Operations

// ListSites returns a filtered page of sites with their categories.
func (service *Service) ListSites(ctx context.Context, filter Filter, limit, offset int) ([]*Site, int, error) {
	return service.siteRepo.List(ctx, filter, limit, offset)
}

// GetSite retrieves one site by ID.
func (service *Service) GetSite(ctx context.Context, id int) (*Site, error) {
	return service.siteRepo.FindByID(ctx, id)
}

// GetSiteBySlug retrieves one site by its URL slug.
func (service *Service) GetSiteBySlug(ctx context.Context, s string) (*Site, error) {
	return service.siteRepo.FindBySlug(ctx, s)
}

/*
CreateSite persists a new heritage site.

Description: The slug is derived from the English name when the client omits
it. Pure-CJK names produce no usable ASCII slug, in which case an explicit
slug is required.

Parameters:
  - ctx: context.Context
  - site: *Site (the new site data)

Returns:
  - error: Validation, duplicate-slug conflict, or persistence errors
*/
func (service *Service) CreateSite(ctx context.Context, site *Site) error {
	if site.Slug == "" {
		site.Slug = slug.From(site.Name)
	}

	v := &validate.Validator{}
	v.Required(FieldName, site.Name)
	v.Required(FieldNameZh, site.NameZh)
	v.Required(FieldSlug, site.Slug)
	v.Slug(FieldSlug, site.Slug)
	if err := v.Err(); err != nil {
		return err
	}

	if err := service.siteRepo.Create(ctx, site); err != nil {
		return err
	}

	service.logger.Info("heritage_site_created",
		slog.Int("site_id", site.ID),
		slog.String("slug", site.Slug),
	)

	return nil
}

// SitePatch carries the editable site fields for a partial update.
// Nil means "leave unchanged".
type SitePatch struct {
	Name             *string
	NameZh           *string
	Slug             *string
	Address          *string
	City             *string
	Latitude         *float64
	Longitude        *float64
	Description      *string
	DescriptionZh    *string
	History          *string
	HistoryZh        *string
	FeaturedImage    *string
	Images           []string
	DesignationLevel *string
	DesignationDate  *time.Time
	IsPublished      *bool
	CategoryID       *int
}

/*
UpdateSite applies a partial update to a site.

Parameters:
  - ctx: context.Context
  - id: int
  - patch: SitePatch (absent fields are left unchanged)

Returns:
  - *Site: The updated site with its category re-hydrated
  - error: NotFound, validation, or persistence errors
*/
func (service *Service) UpdateSite(ctx context.Context, id int, patch SitePatch) (*Site, error) {
	site, err := service.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applySitePatch(site, patch)

	v := &validate.Validator{}
	v.Required(FieldName, site.Name)
	v.Required(FieldNameZh, site.NameZh)
	v.Slug(FieldSlug, site.Slug)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.siteRepo.Update(ctx, site); err != nil {
		return nil, err
	}

	// Re-read so a changed category comes back hydrated.
	return service.siteRepo.FindByID(ctx, id)
}

// applySitePatch copies the patch's set fields onto the site.
func applySitePatch(site *Site, patch SitePatch) {
	if patch.Name != nil {
		site.Name = *patch.Name
	}
	if patch.NameZh != nil {
		site.NameZh = *patch.NameZh
	}
	if patch.Slug != nil {
		site.Slug = *patch.Slug
	}
	if patch.Address != nil {
		site.Address = patch.Address
	}
	if patch.City != nil {
		site.City = patch.City
	}
	if patch.Latitude != nil {
		site.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		site.Longitude = patch.Longitude
	}
	if patch.Description != nil {
		site.Description = patch.Description
	}
	if patch.DescriptionZh != nil {
		site.DescriptionZh = patch.DescriptionZh
	}
	if patch.History != nil {
		site.History = patch.History
	}
	if patch.HistoryZh != nil {
		site.HistoryZh = patch.HistoryZh
	}
	if patch.FeaturedImage != nil {
		site.FeaturedImage = patch.FeaturedImage
	}
	if patch.Images != nil {
		site.Images = patch.Images
	}
	if patch.DesignationLevel != nil {
		site.DesignationLevel = patch.DesignationLevel
	}
	if patch.DesignationDate != nil {
		site.DesignationDate = patch.DesignationDate
	}
	if patch.IsPublished != nil {
		site.IsPublished = *patch.IsPublished
	}
	if patch.CategoryID != nil {
		site.CategoryID = patch.CategoryID
	}
}

// DeleteSite removes a site permanently.
func (service *Service) DeleteSite(ctx context.Context, id int) error {
	if err := service.siteRepo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("heritage_site_deleted", slog.Int("site_id", id))
	return nil
}

// # Category Operations

// ListCategories returns all categories.
func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.categoryRepo.ListCategories(ctx)
}

// CreateCategory persists a new category.
func (service *Service) CreateCategory(ctx context.Context, category *Category) error {
	v := &validate.Validator{}
	v.Required(FieldName, category.Name)
	v.Required(FieldNameZh, category.NameZh)
	if err := v.Err(); err != nil {
		return err
	}

	if err := service.categoryRepo.CreateCategory(ctx, category); err != nil {
		return err
	}

	service.logger.Info("heritage_category_created",
		slog.Int("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return nil
}

// CategoryPatch carries the editable category fields for a partial update.
type CategoryPatch struct {
	Name        *string
	NameZh      *string
	Description *string
}

// UpdateCategory applies a partial update to a category.
func (service *Service) UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*Category, error) {
	category, err := service.categoryRepo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.NameZh != nil {
		category.NameZh = *patch.NameZh
	}
	if patch.Description != nil {
		category.Description = patch.Description
	}

	v := &validate.Validator{}
	v.Required(FieldName, category.Name)
	v.Required(FieldNameZh, category.NameZh)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category; member sites become uncategorized.
func (service *Service) DeleteCategory(ctx context.Context, id int) error {
	if err := service.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	service.logger.Info("heritage_category_deleted", slog.Int("category_id", id))
	return nil
}
