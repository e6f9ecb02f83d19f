// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package heritage manages the villa's heritage sites and their categories.

Sites are the core public content: bilingual descriptions and histories of
Taiwan historic locations, each optionally filed under a category (temples,
residences, gates). Published sites appear on the public website; drafts are
visible to admins only.
*/
package heritage

import "time"

// Category groups heritage sites by kind.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	NameZh      string    `json:"name_zh"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Site is one heritage location with bilingual editorial content.
type Site struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameZh string `json:"name_zh"`
	Slug   string `json:"slug"`

	// Location
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Content
	Description   *string `json:"description"`
	DescriptionZh *string `json:"description_zh"`
	History       *string `json:"history"`
	HistoryZh     *string `json:"history_zh"`

	// Media
	FeaturedImage *string  `json:"featured_image"`
	Images        []string `json:"images"`

	// Designation metadata
	DesignationLevel *string    `json:"designation_level"`
	DesignationDate  *time.Time `json:"designation_date"`
	IsPublished      bool       `json:"is_published"`

	CategoryID *int      `json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows site listings.
type Filter struct {
	// PublishedOnly hides drafts; the public site always sets it.
	PublishedOnly bool
	City          string
	CategoryID    int
}
