// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package media's PostgreSQL repository.

The media library is admin-facing and modest in size, so the listing query
favours simplicity: ILIKE filters over a trigram-indexable set of text
columns, with COUNT(*) OVER() folding the total into the same round-trip.
*/
package media

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

// NewRepository constructs a PostgreSQL backed media store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// recordColumns is the SELECT column list shared by every single-row query.
func recordColumns(prefix string) string {
	t := schema.MediaFile
	cols := []string{
		t.ID, t.Filename, t.OriginalFilename, t.StorageKey, t.PublicURL,
		t.ContentType, t.FileSize, t.Category, t.Folder, t.AltText, t.AltTextZh,
		t.Caption, t.CaptionZh, t.Width, t.Height, t.CreatedAt, t.UpdatedAt,
	}
	if prefix != "" {
		for i, c := range cols {
			cols[i] = prefix + "." + c
		}
	}
	return strings.Join(cols, ", ")
}

// scanRecord hydrates one row into a [Record].
func scanRecord(row pgx.Row, extra ...any) (*Record, error) {
	var record Record
	targets := []any{
		&record.ID, &record.Filename, &record.OriginalFilename, &record.StorageKey,
		&record.PublicURL, &record.ContentType, &record.FileSize, &record.Category,
		&record.Folder, &record.AltText, &record.AltTextZh, &record.Caption,
		&record.CaptionZh, &record.Width, &record.Height, &record.CreatedAt,
		&record.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &record, nil
}

/*
Create inserts a new media record and backfills its generated identity.

Parameters:
  - ctx: context.Context
  - record: *Record (StorageKey must already be unique)

Returns:
  - error: Conflict for duplicate storage keys, otherwise persistence errors
*/
func (repository *postgresRepository) Create(ctx context.Context, record *Record) error {
	t := schema.MediaFile
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING %s, %s, %s
	`,
		t.Table,
		t.Filename, t.OriginalFilename, t.StorageKey, t.PublicURL, t.ContentType,
		t.FileSize, t.Category, t.Folder, t.AltText, t.AltTextZh, t.Caption, t.CaptionZh, t.Width, t.Height,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		record.Filename,
		record.OriginalFilename,
		record.StorageKey,
		record.PublicURL,
		record.ContentType,
		record.FileSize,
		record.Category,
		record.Folder,
		record.AltText,
		record.AltTextZh,
		record.Caption,
		record.CaptionZh,
		record.Width,
		record.Height,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create media record")
	}

	return nil
}

/*
FindByID retrieves a single media record.

Returns:
  - *Record: The hydrated record
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) FindByID(ctx context.Context, id int) (*Record, error) {
	t := schema.MediaFile
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, recordColumns(""), t.Table, t.ID)

	record, err := scanRecord(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("media file")
		}
		return nil, fmt.Errorf("postgres: failed to find media by id: %w", err)
	}

	return record, nil
}

/*
FindByPublicURL locates a record by the URL the public site references.

Returns:
  - *Record: The matched record
  - error: apperr.NotFound when no record serves that URL
*/
func (repository *postgresRepository) FindByPublicURL(ctx context.Context, url string) (*Record, error) {
	t := schema.MediaFile
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, recordColumns(""), t.Table, t.PublicURL)

	record, err := scanRecord(repository.pool.QueryRow(ctx, query, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("media file")
		}
		return nil, fmt.Errorf("postgres: failed to find media by url: %w", err)
	}

	return record, nil
}

/*
List returns filtered media records, newest first, with the total count
computed in the same query via a window function.

Parameters:
  - ctx: context.Context
  - filter: Filter (category, folder, and free-text search)
  - limit, offset: pagination bounds

Returns:
  - []*Record: The matching page
  - int: Total records matching the filter
  - error: Query failures
*/
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Record, int, error) {
	t := schema.MediaFile

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE 1=1
	`, recordColumns(""), t.Table))

	// Category filter injection
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	// Folder filter injection
	if filter.Folder != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.Folder, argID))
		args = append(args, filter.Folder)
		argID++
	}

	// Free-text search across filename and both alt texts
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			t.OriginalFilename, argID, t.AltText, argID, t.AltTextZh, argID,
		))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list media: %w", err)
	}
	defer rows.Close()

	var records []*Record
	var totalCount int

	for rows.Next() {
		record, err := scanRecord(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan media row: %w", err)
		}
		records = append(records, record)
	}

	return records, totalCount, nil
}

/*
ListFolders returns the distinct custom folders in use, sorted.
*/
func (repository *postgresRepository) ListFolders(ctx context.Context) ([]string, error) {
	t := schema.MediaFile
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM %s
		WHERE %s IS NOT NULL AND %s <> ''
		ORDER BY %s
	`, t.Folder, t.Table, t.Folder, t.Folder, t.Folder)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []string
	for rows.Next() {
		var folder string
		if err := rows.Scan(&folder); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	return folders, nil
}

/*
UpdateMeta persists editorial metadata changes (alt texts, captions, folder).
Storage coordinates are untouched here.
*/
func (repository *postgresRepository) UpdateMeta(ctx context.Context, record *Record) error {
	t := schema.MediaFile
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6
	`,
		t.Table,
		t.AltText, t.AltTextZh, t.Caption, t.CaptionZh, t.Folder, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		record.AltText,
		record.AltTextZh,
		record.Caption,
		record.CaptionZh,
		record.Folder,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update media metadata: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("media file")
	}

	return nil
}

/*
UpdateLocation rewrites storage coordinates after a rename: key, public URL,
and both filename columns in one statement.
*/
func (repository *postgresRepository) UpdateLocation(ctx context.Context, record *Record) error {
	t := schema.MediaFile
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $5
	`,
		t.Table,
		t.StorageKey, t.PublicURL, t.Filename, t.OriginalFilename, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		record.StorageKey,
		record.PublicURL,
		record.Filename,
		record.OriginalFilename,
		record.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update media location")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("media file")
	}

	return nil
}

/*
Delete removes a media record permanently.
*/
func (repository *postgresRepository) Delete(ctx context.Context, id int) error {
	t := schema.MediaFile
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete media: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("media file")
	}

	return nil
}
