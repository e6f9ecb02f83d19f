// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package timeline

import "context"

// Repository is the persistence contract for timeline events.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Event, int, error)
	FindByID(ctx context.Context, id int) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int) error
}
