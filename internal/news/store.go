// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package news

import "context"

// Repository is the persistence contract for news articles.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Article, int, error)
	FindByID(ctx context.Context, id int) (*Article, error)
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	Create(ctx context.Context, article *Article) error
	Update(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id int) error
}
