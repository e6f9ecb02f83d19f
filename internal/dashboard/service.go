// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chiaweilin/meihe/internal/platform/constants"
)

// statsCacheTTL bounds how stale the dashboard may appear after a write.
const statsCacheTTL = 30 * time.Second

// # Service Layer

// Service serves dashboard statistics with a short-lived Redis cache in
// front of the aggregate query.
type Service struct {
	repo   Repository
	cache  *redis.Client
	logger *slog.Logger
}

// NewService constructs a dashboard [Service].
func NewService(repo Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

/*
Stats returns the current content counts.

Description: Reads through the cache. Cache failures are logged and treated as
misses; the database aggregate is the source of truth.

Parameters:
  - ctx: context.Context

Returns:
  - *Stats: Content counts across all verticals
  - error: Execution errors from the aggregate query
*/
func (service *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached := service.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := service.repo.CollectStats(ctx)
	if err != nil {
		return nil, err
	}

	service.toCache(ctx, stats)

	return stats, nil
}

func (service *Service) fromCache(ctx context.Context) *Stats {
	payload, err := service.cache.Get(ctx, constants.RedisPrefixDashboardStats).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			service.logger.Warn("dashboard_cache_read_failed", slog.String("error", err.Error()))
		}
		return nil
	}

	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		service.logger.Warn("dashboard_cache_decode_failed", slog.String("error", err.Error()))
		return nil
	}

	return &stats
}

func (service *Service) toCache(ctx context.Context, stats *Stats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := service.cache.Set(ctx, constants.RedisPrefixDashboardStats, payload, statsCacheTTL).Err(); err != nil {
		service.logger.Warn("dashboard_cache_write_failed", slog.String("error", err.Error()))
	}
}
