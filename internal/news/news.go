// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package news manages announcements and event updates published on the
villa's website: bilingual articles with a category, a featured image, and a
publication timestamp.
*/
package news

import "time"

// Article is one news entry.
type Article struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	TitleZh string `json:"title_zh"`
	Slug    string `json:"slug"`

	Summary   *string `json:"summary"`
	SummaryZh *string `json:"summary_zh"`
	Content   *string `json:"content"`
	ContentZh *string `json:"content_zh"`

	FeaturedImage *string `json:"featured_image"`

	// Category is free-form: announcement, event, update.
	Category    *string    `json:"category"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows article listings.
type Filter struct {
	PublishedOnly bool
	Category      string
}
