// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package schema

// TimelineEventTable represents the 'timeline_events' table
type TimelineEventTable struct {
	Table         string
	ID            string
	Year          string
	Month         string
	Day           string
	Era           string
	EraYear       string
	Title         string
	TitleZh       string
	Description   string
	DescriptionZh string
	Image         string
	Category      string
	Importance    string
	IsPublished   string
	CreatedAt     string
	UpdatedAt     string
}

// TimelineEvent is the schema definition for timeline_events
var TimelineEvent = TimelineEventTable{
	Table:         "timeline_events",
	ID:            "id",
	Year:          "year",
	Month:         "month",
	Day:           "day",
	Era:           "era",
	EraYear:       "era_year",
	Title:         "title",
	TitleZh:       "title_zh",
	Description:   "description",
	DescriptionZh: "description_zh",
	Image:         "image",
	Category:      "category",
	Importance:    "importance",
	IsPublished:   "is_published",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}
