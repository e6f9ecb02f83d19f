// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package visitinfo manages the visitor-information sections of the public
site: opening hours, tickets, transport, rules. Each section is a singleton
keyed by a stable section name, carrying bilingual content plus a free-form
JSON payload for structured data like price tables.
*/
package visitinfo

import (
	"encoding/json"
	"time"
)

// Section is one visitor-information block.
type Section struct {
	ID int `json:"id"`

	// Key is the stable section identifier: hours, tickets, transport, rules.
	Key string `json:"section"`

	Title   string `json:"title"`
	TitleZh string `json:"title_zh"`

	Content   *string `json:"content"`
	ContentZh *string `json:"content_zh"`

	// ExtraData carries structured content (opening hours, prices) the
	// frontend renders itself. Stored verbatim as JSON.
	ExtraData json.RawMessage `json:"extra_data"`

	DisplayOrder int  `json:"display_order"`
	IsActive     bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
