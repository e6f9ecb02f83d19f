// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package schema

// NewsTable represents the 'news' table
type NewsTable struct {
	Table         string
	ID            string
	Title         string
	TitleZh       string
	Slug          string
	Summary       string
	SummaryZh     string
	Content       string
	ContentZh     string
	FeaturedImage string
	Category      string
	IsPublished   string
	PublishedAt   string
	CreatedAt     string
	UpdatedAt     string
}

// News is the schema definition for news
var News = NewsTable{
	Table:         "news",
	ID:            "id",
	Title:         "title",
	TitleZh:       "title_zh",
	Slug:          "slug",
	Summary:       "summary",
	SummaryZh:     "summary_zh",
	Content:       "content",
	ContentZh:     "content_zh",
	FeaturedImage: "featured_image",
	Category:      "category",
	IsPublished:   "is_published",
	PublishedAt:   "published_at",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}
