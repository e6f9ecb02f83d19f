// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package news

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
)

// # Test Doubles

// fakeRepo is an in-memory [Repository].
type fakeRepo struct {
	articles map[int]*Article
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: map[int]*Article{}, nextID: 1}
}

func (repo *fakeRepo) List(_ context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	var matched []*Article
	for _, article := range repo.articles {
		if filter.PublishedOnly && !article.IsPublished {
			continue
		}
		matched = append(matched, article)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int) (*Article, error) {
	article, ok := repo.articles[id]
	if !ok {
		return nil, apperr.NotFound("News article")
	}
	copied := *article
	return &copied, nil
}

func (repo *fakeRepo) FindBySlug(_ context.Context, slug string) (*Article, error) {
	for _, article := range repo.articles {
		if article.Slug == slug {
			copied := *article
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("News article")
}

func (repo *fakeRepo) Create(_ context.Context, article *Article) error {
	article.ID = repo.nextID
	repo.nextID++
	repo.articles[article.ID] = article
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, article *Article) error {
	if _, ok := repo.articles[article.ID]; !ok {
		return apperr.NotFound("News article")
	}
	copied := *article
	repo.articles[article.ID] = &copied
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int) error {
	delete(repo.articles, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Publication Stamp Tests

func TestCreate_DraftHasNoPublicationDate(t *testing.T) {
	service := newTestService(newFakeRepo())

	article := &Article{Title: "Restoration Update", TitleZh: "修復進度"}
	require.NoError(t, service.Create(context.Background(), article))

	assert.Nil(t, article.PublishedAt)
	assert.Equal(t, "restoration-update", article.Slug)
}

func TestCreate_PublishedGetsStampedNow(t *testing.T) {
	service := newTestService(newFakeRepo())

	article := &Article{Title: "Grand Reopening", TitleZh: "重新開放", IsPublished: true}
	require.NoError(t, service.Create(context.Background(), article))

	require.NotNil(t, article.PublishedAt)
	assert.WithinDuration(t, time.Now().UTC(), *article.PublishedAt, time.Minute)
}

func TestCreate_ExplicitPublicationDateKept(t *testing.T) {
	service := newTestService(newFakeRepo())

	scheduled := time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)
	article := &Article{
		Title:       "Anniversary",
		TitleZh:     "週年紀念",
		IsPublished: true,
		PublishedAt: &scheduled,
	}
	require.NoError(t, service.Create(context.Background(), article))

	assert.Equal(t, scheduled, *article.PublishedAt)
}

func TestUpdate_FirstPublishStampsDate(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	article := &Article{Title: "Restoration Update", TitleZh: "修復進度"}
	require.NoError(t, service.Create(context.Background(), article))
	require.Nil(t, article.PublishedAt)

	published := true
	updated, err := service.Update(context.Background(), article.ID, Patch{IsPublished: &published})
	require.NoError(t, err)

	require.NotNil(t, updated.PublishedAt)
	assert.WithinDuration(t, time.Now().UTC(), *updated.PublishedAt, time.Minute)
}

func TestUpdate_RepublishKeepsOriginalDate(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	original := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	article := &Article{
		Title:       "Opening",
		TitleZh:     "開幕",
		IsPublished: true,
		PublishedAt: &original,
	}
	require.NoError(t, service.Create(context.Background(), article))

	unpublished := false
	_, err := service.Update(context.Background(), article.ID, Patch{IsPublished: &unpublished})
	require.NoError(t, err)

	republished := true
	updated, err := service.Update(context.Background(), article.ID, Patch{IsPublished: &republished})
	require.NoError(t, err)

	assert.Equal(t, original, *updated.PublishedAt)
}
