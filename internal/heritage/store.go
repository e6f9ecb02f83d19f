// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package heritage

import "context"

// SiteRepository is the persistence contract for heritage sites.
type SiteRepository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Site, int, error)
	FindByID(ctx context.Context, id int) (*Site, error)
	FindBySlug(ctx context.Context, slug string) (*Site, error)
	Create(ctx context.Context, site *Site) error
	Update(ctx context.Context, site *Site) error
	Delete(ctx context.Context, id int) error
}

// CategoryRepository is the persistence contract for site categories.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	FindCategoryByID(ctx context.Context, id int) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id int) error
}
