// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chiaweilin/meihe/internal/platform/database/schema"
	"github.com/chiaweilin/meihe/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed dashboard store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
CollectStats aggregates content counts in a single round-trip.

Description: Each count is a scalar subquery so the snapshot is taken from one
consistent read. DraftSites is derived, not stored.

Parameters:
  - ctx: context.Context

Returns:
  - *Stats: Content counts across all verticals
  - error: Execution errors
*/
func (repository *postgresRepository) CollectStats(ctx context.Context) (*Stats, error) {
	sites := schema.HeritageSite
	news := schema.News
	events := schema.TimelineEvent
	visit := schema.VisitInfo

	statement := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s WHERE %s = TRUE),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s WHERE %s = TRUE),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s WHERE %s = TRUE),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s WHERE %s = TRUE)`,
		sites.Table,
		sites.Table, sites.IsPublished,
		schema.HeritageCategory.Table,
		news.Table,
		news.Table, news.IsPublished,
		events.Table,
		events.Table, events.IsPublished,
		visit.Table,
		visit.Table, visit.IsActive,
	)

	var stats Stats
	err := repository.pool.QueryRow(ctx, statement).Scan(
		&stats.TotalSites,
		&stats.PublishedSites,
		&stats.TotalCategories,
		&stats.TotalNews,
		&stats.PublishedNews,
		&stats.TotalTimelineEvents,
		&stats.PublishedTimelineEvents,
		&stats.TotalVisitInfo,
		&stats.ActiveVisitInfo,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_collect_stats")
	}

	stats.DraftSites = stats.TotalSites - stats.PublishedSites

	return &stats, nil
}
