// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package schema

// HeritageSiteTable represents the 'heritage_sites' table
type HeritageSiteTable struct {
	Table            string
	ID               string
	Name             string
	NameZh           string
	Slug             string
	Address          string
	City             string
	Latitude         string
	Longitude        string
	Description      string
	DescriptionZh    string
	History          string
	HistoryZh        string
	FeaturedImage    string
	Images           string
	DesignationLevel string
	DesignationDate  string
	IsPublished      string
	CategoryID       string
	CreatedAt        string
	UpdatedAt        string
}

// HeritageSite is the schema definition for heritage_sites
var HeritageSite = HeritageSiteTable{
	Table:            "heritage_sites",
	ID:               "id",
	Name:             "name",
	NameZh:           "name_zh",
	Slug:             "slug",
	Address:          "address",
	City:             "city",
	Latitude:         "latitude",
	Longitude:        "longitude",
	Description:      "description",
	DescriptionZh:    "description_zh",
	History:          "history",
	HistoryZh:        "history_zh",
	FeaturedImage:    "featured_image",
	Images:           "images",
	DesignationLevel: "designation_level",
	DesignationDate:  "designation_date",
	IsPublished:      "is_published",
	CategoryID:       "category_id",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

// HeritageCategoryTable represents the 'heritage_categories' table
type HeritageCategoryTable struct {
	Table       string
	ID          string
	Name        string
	NameZh      string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// HeritageCategory is the schema definition for heritage_categories
var HeritageCategory = HeritageCategoryTable{
	Table:       "heritage_categories",
	ID:          "id",
	Name:        "name",
	NameZh:      "name_zh",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}
