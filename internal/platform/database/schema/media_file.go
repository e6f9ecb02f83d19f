// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

// Package schema defines column-name references for every table in the Meihe
// database. Repositories build their SQL from these structs so a column
// rename touches exactly one file.
package schema

// MediaFileTable represents the 'media_files' table
type MediaFileTable struct {
	Table            string
	ID               string
	Filename         string
	OriginalFilename string
	StorageKey       string
	PublicURL        string
	ContentType      string
	FileSize         string
	Category         string
	Folder           string
	AltText          string
	AltTextZh        string
	Caption          string
	CaptionZh        string
	Width            string
	Height           string
	CreatedAt        string
	UpdatedAt        string
}

// MediaFile is the schema definition for media_files
var MediaFile = MediaFileTable{
	Table:            "media_files",
	ID:               "id",
	Filename:         "filename",
	OriginalFilename: "original_filename",
	StorageKey:       "storage_key",
	PublicURL:        "public_url",
	ContentType:      "content_type",
	FileSize:         "file_size",
	Category:         "category",
	Folder:           "folder",
	AltText:          "alt_text",
	AltTextZh:        "alt_text_zh",
	Caption:          "caption",
	CaptionZh:        "caption_zh",
	Width:            "width",
	Height:           "height",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

// Columns returns all standard column names
func (t MediaFileTable) Columns() []string {
	return []string{
		t.ID, t.Filename, t.OriginalFilename, t.StorageKey, t.PublicURL,
		t.ContentType, t.FileSize, t.Category, t.Folder, t.AltText, t.AltTextZh,
		t.Caption, t.CaptionZh, t.Width, t.Height, t.CreatedAt, t.UpdatedAt,
	}
}
