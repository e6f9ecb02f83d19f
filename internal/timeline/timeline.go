// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package timeline manages the villa's historical chronology: dated events
spanning the Qing, Japanese, and Republican eras, rendered as the public
history timeline.

Events carry both a Gregorian year and the era-calendar label the period used
(e.g. 同治8年), since visitors expect to see both.
*/
package timeline

import "time"

// Importance levels for visual weighting on the public timeline.
const (
	ImportanceMajor  = "major"
	ImportanceNormal = "normal"
	ImportanceMinor  = "minor"
)

// Event is one entry in the historical timeline.
type Event struct {
	ID int `json:"id"`

	// Date: year is required, month/day optional for imprecise records.
	Year  int  `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`

	// Era-calendar labels, e.g. era "清同治", era_year "同治8年".
	Era     *string `json:"era"`
	EraYear *string `json:"era_year"`

	Title         string  `json:"title"`
	TitleZh       string  `json:"title_zh"`
	Description   *string `json:"description"`
	DescriptionZh *string `json:"description_zh"`

	Image *string `json:"image"`

	// Category is free-form: construction, restoration, cultural, political.
	Category   *string `json:"category"`
	Importance string  `json:"importance"`

	IsPublished bool `json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows event listings.
type Filter struct {
	PublishedOnly bool
	Category      string
}
