// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

// Package dashboard aggregates content counts for the admin overview page.
package dashboard

import "context"

// Stats is the snapshot of content counts shown on the admin dashboard.
type Stats struct {
	TotalSites              int `json:"total_sites"`
	PublishedSites          int `json:"published_sites"`
	DraftSites              int `json:"draft_sites"`
	TotalCategories         int `json:"total_categories"`
	TotalNews               int `json:"total_news"`
	PublishedNews           int `json:"published_news"`
	TotalTimelineEvents     int `json:"total_timeline_events"`
	PublishedTimelineEvents int `json:"published_timeline_events"`
	TotalVisitInfo          int `json:"total_visit_info"`
	ActiveVisitInfo         int `json:"active_visit_info"`
}

// Repository aggregates counts across the content tables.
type Repository interface {
	CollectStats(ctx context.Context) (*Stats, error)
}
