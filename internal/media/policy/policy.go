// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package policy defines the upload rules for Meihe media: which content types
are accepted, their size ceilings, how storage keys are derived, and how a
stored object maps to a public URL.

# Key Layout

Objects are filed under a category/date hierarchy:

	{images|videos}/{year}/{month}/{8-hex}-{filename}

The random prefix makes keys collision-free across uploads of identically
named files, while keeping the original filename visible for operators
browsing the bucket.

The rules live here, isolated from storage and transport, so they can be
verified without an S3 connection.
*/
package policy

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
)

// # Upload Limits

const (
	// MaxImageSize is the per-file ceiling for image uploads (10 MiB).
	MaxImageSize = 10 * 1024 * 1024
	// MaxVideoSize is the per-file ceiling for video uploads (100 MiB).
	MaxVideoSize = 100 * 1024 * 1024
)

// Category is the top-level storage folder an upload is filed under.
type Category string

const (
	CategoryImages Category = "images"
	CategoryVideos Category = "videos"
)

// # Allowed Content Types

// imageTypes maps accepted image content types to their canonical extension.
var imageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// videoTypes maps accepted video content types to their canonical extension.
var videoTypes = map[string]string{
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
}

// Ordered listings for API responses (map iteration order is random).
var (
	imageTypeOrder = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	videoTypeOrder = []string{"video/mp4", "video/webm", "video/quicktime"}
)

// Classify returns the storage category for a content type, or false when the
// type is not accepted at all.
func Classify(contentType string) (Category, bool) {
	if _, ok := imageTypes[contentType]; ok {
		return CategoryImages, true
	}
	if _, ok := videoTypes[contentType]; ok {
		return CategoryVideos, true
	}
	return "", false
}

// MaxSize returns the byte ceiling for a content type, or 0 for types that
// are not accepted.
func MaxSize(contentType string) int64 {
	switch {
	case imageTypes[contentType] != "":
		return MaxImageSize
	case videoTypes[contentType] != "":
		return MaxVideoSize
	}
	return 0
}

// IsAllowed reports whether the content type may be uploaded at all.
func IsAllowed(contentType string) bool {
	_, ok := Classify(contentType)
	return ok
}

// # Key Derivation

/*
SanitizeFilename makes a filename safe for use inside a storage key.

Only spaces are rewritten (to hyphens): uploaded names routinely carry CJK
characters that must survive into the key so the original filename stays
recognisable in the bucket.
*/
func SanitizeFilename(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

/*
DeriveKey builds a fresh, unique storage key for an upload.

Description: Files the object under its category and the current UTC
year/month, prefixed with 8 random hex characters so two uploads of the
same filename never collide.

Parameters:
  - filename: string (The client's original filename)
  - contentType: string (Must be an accepted type)

Returns:
  - string: The derived key, e.g. "images/2026/08/3fa4bc21-garden.jpg"
  - error: apperr unsupported-type error for rejected content types
*/
func DeriveKey(filename, contentType string) (string, error) {
	category, ok := Classify(contentType)
	if !ok {
		return "", apperr.UnsupportedMediaType(contentType)
	}

	now := time.Now().UTC()
	uid := randomHex(4)
	safe := SanitizeFilename(filename)

	return fmt.Sprintf("%s/%d/%02d/%s-%s", category, now.Year(), int(now.Month()), uid, safe), nil
}

/*
RenameTarget computes the destination key for renaming a stored object.

Description: The new filename replaces only the last path segment; the
category/date prefix is preserved so the object stays filed where it was
originally uploaded. A key with no slash (legacy flat keys) is replaced
wholesale.

Parameters:
  - oldKey: string (The object's current key)
  - newFilename: string (Replacement for the last segment, already sanitized)

Returns:
  - string: The target key. Equal to oldKey when the name is unchanged.
*/
func RenameTarget(oldKey, newFilename string) string {
	idx := strings.LastIndex(oldKey, "/")
	if idx < 0 {
		return newFilename
	}
	return oldKey[:idx+1] + newFilename
}

// randomHex returns n random bytes hex-encoded (2n characters).
func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// # Public URL Resolution

// URLResolver maps storage keys to the URLs the public site serves them from.
type URLResolver struct {
	Bucket    string
	Region    string
	CDNDomain string
}

// PublicURL returns the browser-facing URL for a stored object. When a CDN
// domain is configured it fronts the bucket; otherwise the URL points at the
// bucket's regional S3 endpoint.
func (resolver URLResolver) PublicURL(key string) string {
	if resolver.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", resolver.CDNDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", resolver.Bucket, resolver.Region, key)
}

// # Allowed Types Disclosure

// TypeInfo describes one category's accepted types for the public
// allowed-types endpoint.
type TypeInfo struct {
	Types        []string `json:"types"`
	Extensions   []string `json:"extensions"`
	MaxSizeBytes int64    `json:"max_size_bytes"`
	MaxSizeMB    float64  `json:"max_size_mb"`
}

// AllowedTypes holds the full upload policy disclosure.
type AllowedTypes struct {
	Images TypeInfo `json:"images"`
	Videos TypeInfo `json:"videos"`
}

// Allowed returns the accepted content types and limits per category, in a
// stable order suitable for direct JSON serialisation.
func Allowed() AllowedTypes {
	return AllowedTypes{
		Images: TypeInfo{
			Types:        imageTypeOrder,
			Extensions:   extensionsFor(imageTypeOrder, imageTypes),
			MaxSizeBytes: MaxImageSize,
			MaxSizeMB:    float64(MaxImageSize) / (1024 * 1024),
		},
		Videos: TypeInfo{
			Types:        videoTypeOrder,
			Extensions:   extensionsFor(videoTypeOrder, videoTypes),
			MaxSizeBytes: MaxVideoSize,
			MaxSizeMB:    float64(MaxVideoSize) / (1024 * 1024),
		},
	}
}

// extensionsFor resolves extensions in the same order as the type listing.
func extensionsFor(order []string, table map[string]string) []string {
	exts := make([]string, 0, len(order))
	for _, contentType := range order {
		exts = append(exts, table[contentType])
	}
	return exts
}
