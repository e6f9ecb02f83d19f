// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package schema

// VisitInfoTable represents the 'visit_info' table
type VisitInfoTable struct {
	Table        string
	ID           string
	Section      string
	Title        string
	TitleZh      string
	Content      string
	ContentZh    string
	ExtraData    string
	DisplayOrder string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// VisitInfo is the schema definition for visit_info
var VisitInfo = VisitInfoTable{
	Table:        "visit_info",
	ID:           "id",
	Section:      "section",
	Title:        "title",
	TitleZh:      "title_zh",
	Content:      "content",
	ContentZh:    "content_zh",
	ExtraData:    "extra_data",
	DisplayOrder: "display_order",
	IsActive:     "is_active",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
