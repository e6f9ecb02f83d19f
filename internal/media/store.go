// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package media

import "context"

// Repository is the persistence contract for media records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id int) (*Record, error)
	FindByPublicURL(ctx context.Context, url string) (*Record, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Record, int, error)
	ListFolders(ctx context.Context) ([]string, error)

	// UpdateMeta persists editorial metadata changes only.
	UpdateMeta(ctx context.Context, record *Record) error

	// UpdateLocation rewrites the storage coordinates after a rename. It is
	// the commit point of the rename flow: until it succeeds the record still
	// points at the old object.
	UpdateLocation(ctx context.Context, record *Record) error

	Delete(ctx context.Context, id int) error
}
