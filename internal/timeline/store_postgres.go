// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package timeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
	"github.com/chiaweilin/meihe/internal/platform/database/schema"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed timeline store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// eventColumns is the SELECT list shared by every query.
func eventColumns() string {
	t := schema.TimelineEvent
	return strings.Join([]string{
		t.ID, t.Year, t.Month, t.Day, t.Era, t.EraYear,
		t.Title, t.TitleZh, t.Description, t.DescriptionZh,
		t.Image, t.Category, t.Importance, t.IsPublished,
		t.CreatedAt, t.UpdatedAt,
	}, ", ")
}

// scanEvent hydrates one row.
func scanEvent(row pgx.Row, extra ...any) (*Event, error) {
	var event Event
	targets := []any{
		&event.ID, &event.Year, &event.Month, &event.Day, &event.Era, &event.EraYear,
		&event.Title, &event.TitleZh, &event.Description, &event.DescriptionZh,
		&event.Image, &event.Category, &event.Importance, &event.IsPublished,
		&event.CreatedAt, &event.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &event, nil
}

/*
List retrieves filtered events in chronological order (ascending year, then
month and day with unknowns first).

Returns:
  - []*Event: The matching page
  - int: Total events matching the filter
*/
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Event, int, error) {
	t := schema.TimelineEvent

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE 1=1
	`, eventColumns(), t.Table))

	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = TRUE", t.IsPublished))
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(
		" ORDER BY %s ASC, %s ASC NULLS FIRST, %s ASC NULLS FIRST",
		t.Year, t.Month, t.Day,
	))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list timeline events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	var totalCount int

	for rows.Next() {
		event, err := scanEvent(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan timeline event: %w", err)
		}
		events = append(events, event)
	}

	return events, totalCount, nil
}

// FindByID retrieves one event.
func (repository *postgresRepository) FindByID(ctx context.Context, id int) (*Event, error) {
	t := schema.TimelineEvent
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, eventColumns(), t.Table, t.ID)

	event, err := scanEvent(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("timeline event")
		}
		return nil, fmt.Errorf("postgres: failed to find timeline event: %w", err)
	}

	return event, nil
}

// Create inserts a new event and backfills its generated identity.
func (repository *postgresRepository) Create(ctx context.Context, event *Event) error {
	t := schema.TimelineEvent
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING %s, %s, %s
	`,
		t.Table,
		t.Year, t.Month, t.Day, t.Era, t.EraYear,
		t.Title, t.TitleZh, t.Description, t.DescriptionZh,
		t.Image, t.Category, t.Importance, t.IsPublished,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		event.Year, event.Month, event.Day, event.Era, event.EraYear,
		event.Title, event.TitleZh, event.Description, event.DescriptionZh,
		event.Image, event.Category, event.Importance, event.IsPublished,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres: failed to create timeline event: %w", err)
	}

	return nil
}

// Update overwrites an event's editable columns.
func (repository *postgresRepository) Update(ctx context.Context, event *Event) error {
	t := schema.TimelineEvent
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8, %s = $9,
			%s = $10, %s = $11, %s = $12, %s = $13, %s = NOW()
		WHERE %s = $14
	`,
		t.Table,
		t.Year, t.Month, t.Day, t.Era, t.EraYear,
		t.Title, t.TitleZh, t.Description, t.DescriptionZh,
		t.Image, t.Category, t.Importance, t.IsPublished, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		event.Year, event.Month, event.Day, event.Era, event.EraYear,
		event.Title, event.TitleZh, event.Description, event.DescriptionZh,
		event.Image, event.Category, event.Importance, event.IsPublished,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update timeline event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("timeline event")
	}

	return nil
}

// Delete removes an event permanently.
func (repository *postgresRepository) Delete(ctx context.Context, id int) error {
	t := schema.TimelineEvent
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete timeline event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("timeline event")
	}

	return nil
}
