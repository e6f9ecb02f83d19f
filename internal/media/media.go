// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package media manages the villa's uploaded assets: presigned direct-to-S3
uploads, the metadata library backing the admin media manager, and the
lifecycle operations (rename, delete) that must keep database records and
bucket objects consistent.

# Upload Flow

Files never pass through this API. The browser asks for a presigned PUT URL,
uploads straight to the bucket, then registers the file's metadata here. The
database row is the source of truth for what the bucket should contain.
*/
package media

import "time"

// Record is the stored metadata for one uploaded file.
type Record struct {
	ID int `json:"id"`

	// File identity
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	StorageKey       string `json:"storage_key"`
	PublicURL        string `json:"public_url"`
	ContentType      string `json:"content_type"`
	FileSize         *int64 `json:"file_size"`

	// Categorization
	Category string  `json:"category"`
	Folder   *string `json:"folder"`

	// Editorial metadata, bilingual (English / Traditional Chinese)
	AltText   *string `json:"alt_text"`
	AltTextZh *string `json:"alt_text_zh"`
	Caption   *string `json:"caption"`
	CaptionZh *string `json:"caption_zh"`

	// Pixel dimensions, images only
	Width  *int `json:"width"`
	Height *int `json:"height"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows media listings in the admin library view.
type Filter struct {
	// Category restricts to "images" or "videos".
	Category string
	// Folder restricts to one custom folder.
	Folder string
	// Search matches original filename and alt texts, case-insensitively.
	Search string
}

// MetaPatch carries the editable metadata fields for a partial update.
// Nil means "leave unchanged".
type MetaPatch struct {
	AltText   *string
	AltTextZh *string
	Caption   *string
	CaptionZh *string
	Folder    *string
	// OriginalFilename, when set and different, triggers a storage-side
	// rename in addition to the metadata update.
	OriginalFilename *string
}
