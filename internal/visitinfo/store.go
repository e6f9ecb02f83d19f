// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package visitinfo

import "context"

// Repository is the persistence contract for visitor-information sections.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]*Section, error)
	FindByID(ctx context.Context, id int) (*Section, error)
	FindByKey(ctx context.Context, key string) (*Section, error)
	Create(ctx context.Context, section *Section) error
	Update(ctx context.Context, section *Section) error
	Delete(ctx context.Context, id int) error
}
