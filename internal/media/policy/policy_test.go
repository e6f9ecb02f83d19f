// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package policy_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/media/policy"
	"github.com/chiaweilin/meihe/internal/platform/apperr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		contentType string
		wantCat     policy.Category
		wantOK      bool
	}{
		{"image/jpeg", policy.CategoryImages, true},
		{"image/png", policy.CategoryImages, true},
		{"image/webp", policy.CategoryImages, true},
		{"image/gif", policy.CategoryImages, true},
		{"video/mp4", policy.CategoryVideos, true},
		{"video/webm", policy.CategoryVideos, true},
		{"video/quicktime", policy.CategoryVideos, true},
		{"image/svg+xml", "", false},
		{"application/pdf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			cat, ok := policy.Classify(tt.contentType)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCat, cat)
		})
	}
}

func TestMaxSize(t *testing.T) {
	assert.EqualValues(t, 10*1024*1024, policy.MaxSize("image/jpeg"))
	assert.EqualValues(t, 100*1024*1024, policy.MaxSize("video/mp4"))
	assert.EqualValues(t, 0, policy.MaxSize("application/zip"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "old-villa-gate.jpg", policy.SanitizeFilename("old villa gate.jpg"))

	// CJK filenames must pass through untouched.
	assert.Equal(t, "梅鶴山莊.jpg", policy.SanitizeFilename("梅鶴山莊.jpg"))
	assert.Equal(t, "already-clean.png", policy.SanitizeFilename("already-clean.png"))
}

func TestDeriveKey_Shape(t *testing.T) {
	key, err := policy.DeriveKey("front gate.jpg", "image/jpeg")
	require.NoError(t, err)

	now := time.Now().UTC()
	pattern := fmt.Sprintf(`^images/%d/%02d/[0-9a-f]{8}-front-gate\.jpg$`, now.Year(), int(now.Month()))
	assert.Regexp(t, regexp.MustCompile(pattern), key)
}

func TestDeriveKey_Video(t *testing.T) {
	key, err := policy.DeriveKey("tour.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Regexp(t, `^videos/\d{4}/\d{2}/[0-9a-f]{8}-tour\.mp4$`, key)
}

func TestDeriveKey_Unique(t *testing.T) {
	a, err := policy.DeriveKey("same.jpg", "image/jpeg")
	require.NoError(t, err)
	b, err := policy.DeriveKey("same.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDeriveKey_RejectsUnsupported(t *testing.T) {
	_, err := policy.DeriveKey("doc.pdf", "application/pdf")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestRenameTarget(t *testing.T) {
	tests := []struct {
		name        string
		oldKey      string
		newFilename string
		want        string
	}{
		{"preserves_prefix", "images/2026/08/3fa4bc21-old.jpg", "new.jpg", "images/2026/08/3fa4bc21-new.jpg"},
		{"flat_legacy_key", "orphan.jpg", "fresh.jpg", "fresh.jpg"},
		{"same_name", "images/2026/08/ab12cd34-pic.png", "ab12cd34-pic.png", "images/2026/08/ab12cd34-pic.png"},
		{"deep_prefix", "videos/2025/12/deadbeef-walk.mp4", "stroll.mp4", "videos/2025/12/stroll.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.RenameTarget(tt.oldKey, tt.newFilename))
		})
	}
}

func TestURLResolver(t *testing.T) {
	direct := policy.URLResolver{Bucket: "meihe-media", Region: "ap-northeast-1"}
	assert.Equal(t,
		"https://meihe-media.s3.ap-northeast-1.amazonaws.com/images/2026/08/ab-x.jpg",
		direct.PublicURL("images/2026/08/ab-x.jpg"),
	)

	cdn := policy.URLResolver{Bucket: "meihe-media", Region: "ap-northeast-1", CDNDomain: "cdn.meihe.tw"}
	assert.Equal(t,
		"https://cdn.meihe.tw/images/2026/08/ab-x.jpg",
		cdn.PublicURL("images/2026/08/ab-x.jpg"),
	)
}

func TestAllowed_StableOrdering(t *testing.T) {
	info := policy.Allowed()

	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp", "image/gif"}, info.Images.Types)
	assert.Equal(t, []string{"jpg", "png", "webp", "gif"}, info.Images.Extensions)
	assert.EqualValues(t, policy.MaxImageSize, info.Images.MaxSizeBytes)
	assert.InDelta(t, 10.0, info.Images.MaxSizeMB, 0.001)

	assert.Equal(t, []string{"video/mp4", "video/webm", "video/quicktime"}, info.Videos.Types)
	assert.Equal(t, []string{"mp4", "webm", "mov"}, info.Videos.Extensions)
	assert.InDelta(t, 100.0, info.Videos.MaxSizeMB, 0.001)
}
