// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package heritage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
)

// # Test Doubles

// fakeSiteRepo is an in-memory [SiteRepository].
type fakeSiteRepo struct {
	sites  map[int]*Site
	nextID int
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: map[int]*Site{}, nextID: 1}
}

func (repo *fakeSiteRepo) List(_ context.Context, filter Filter, limit, offset int) ([]*Site, int, error) {
	var matched []*Site
	for _, site := range repo.sites {
		if filter.PublishedOnly && !site.IsPublished {
			continue
		}
		matched = append(matched, site)
	}
	return matched, len(matched), nil
}

func (repo *fakeSiteRepo) FindByID(_ context.Context, id int) (*Site, error) {
	site, ok := repo.sites[id]
	if !ok {
		return nil, apperr.NotFound("Heritage site")
	}
	copied := *site
	return &copied, nil
}

func (repo *fakeSiteRepo) FindBySlug(_ context.Context, slug string) (*Site, error) {
	for _, site := range repo.sites {
		if site.Slug == slug {
			copied := *site
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Heritage site")
}

func (repo *fakeSiteRepo) Create(_ context.Context, site *Site) error {
	for _, existing := range repo.sites {
		if existing.Slug == site.Slug {
			return apperr.Conflict("A heritage site with this slug already exists")
		}
	}
	site.ID = repo.nextID
	repo.nextID++
	repo.sites[site.ID] = site
	return nil
}

func (repo *fakeSiteRepo) Update(_ context.Context, site *Site) error {
	if _, ok := repo.sites[site.ID]; !ok {
		return apperr.NotFound("Heritage site")
	}
	copied := *site
	repo.sites[site.ID] = &copied
	return nil
}

func (repo *fakeSiteRepo) Delete(_ context.Context, id int) error {
	if _, ok := repo.sites[id]; !ok {
		return apperr.NotFound("Heritage site")
	}
	delete(repo.sites, id)
	return nil
}

// fakeCategoryRepo is an in-memory [CategoryRepository].
type fakeCategoryRepo struct {
	categories map[int]*Category
	nextID     int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int]*Category{}, nextID: 1}
}

func (repo *fakeCategoryRepo) ListCategories(_ context.Context) ([]*Category, error) {
	var all []*Category
	for _, category := range repo.categories {
		all = append(all, category)
	}
	return all, nil
}

func (repo *fakeCategoryRepo) FindCategoryByID(_ context.Context, id int) (*Category, error) {
	category, ok := repo.categories[id]
	if !ok {
		return nil, apperr.NotFound("Heritage category")
	}
	copied := *category
	return &copied, nil
}

func (repo *fakeCategoryRepo) CreateCategory(_ context.Context, category *Category) error {
	category.ID = repo.nextID
	repo.nextID++
	repo.categories[category.ID] = category
	return nil
}

func (repo *fakeCategoryRepo) UpdateCategory(_ context.Context, category *Category) error {
	if _, ok := repo.categories[category.ID]; !ok {
		return apperr.NotFound("Heritage category")
	}
	copied := *category
	repo.categories[category.ID] = &copied
	return nil
}

func (repo *fakeCategoryRepo) DeleteCategory(_ context.Context, id int) error {
	delete(repo.categories, id)
	return nil
}

func newTestService(siteRepo SiteRepository, categoryRepo CategoryRepository) *Service {
	return NewService(siteRepo, categoryRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Site Tests

func TestCreateSite_DerivesSlugFromName(t *testing.T) {
	repo := newFakeSiteRepo()
	service := newTestService(repo, newFakeCategoryRepo())

	site := &Site{Name: "Meihe Villa Front Hall", NameZh: "梅鶴山莊前廳"}
	require.NoError(t, service.CreateSite(context.Background(), site))

	assert.Equal(t, "meihe-villa-front-hall", site.Slug)
	assert.NotZero(t, site.ID)
}

func TestCreateSite_ExplicitSlugWins(t *testing.T) {
	repo := newFakeSiteRepo()
	service := newTestService(repo, newFakeCategoryRepo())

	site := &Site{Name: "Meihe Villa", NameZh: "梅鶴山莊", Slug: "the-villa"}
	require.NoError(t, service.CreateSite(context.Background(), site))

	assert.Equal(t, "the-villa", site.Slug)
}

func TestCreateSite_PureCJKNameNeedsExplicitSlug(t *testing.T) {
	// A pure-CJK name yields an empty derived slug, which fails validation.
	repo := newFakeSiteRepo()
	service := newTestService(repo, newFakeCategoryRepo())

	err := service.CreateSite(context.Background(), &Site{Name: "梅鶴山莊", NameZh: "梅鶴山莊"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestCreateSite_DuplicateSlug(t *testing.T) {
	repo := newFakeSiteRepo()
	service := newTestService(repo, newFakeCategoryRepo())

	require.NoError(t, service.CreateSite(context.Background(), &Site{Name: "Front Hall", NameZh: "前廳"}))

	err := service.CreateSite(context.Background(), &Site{Name: "Front Hall", NameZh: "前廳"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestUpdateSite_PartialPatch(t *testing.T) {
	repo := newFakeSiteRepo()
	service := newTestService(repo, newFakeCategoryRepo())

	site := &Site{Name: "Front Hall", NameZh: "前廳"}
	require.NoError(t, service.CreateSite(context.Background(), site))

	published := true
	city := "Taoyuan"
	updated, err := service.UpdateSite(context.Background(), site.ID, SitePatch{
		IsPublished: &published,
		City:        &city,
	})
	require.NoError(t, err)

	assert.True(t, updated.IsPublished)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Taoyuan", *updated.City)

	// Untouched fields survive the patch.
	assert.Equal(t, "Front Hall", updated.Name)
	assert.Equal(t, "front-hall", updated.Slug)
}

func TestUpdateSite_CannotBlankName(t *testing.T) {
	repo := newFakeSiteRepo()
	service := newTestService(repo, newFakeCategoryRepo())

	site := &Site{Name: "Front Hall", NameZh: "前廳"}
	require.NoError(t, service.CreateSite(context.Background(), site))

	blank := ""
	_, err := service.UpdateSite(context.Background(), site.ID, SitePatch{Name: &blank})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestUpdateSite_NotFound(t *testing.T) {
	service := newTestService(newFakeSiteRepo(), newFakeCategoryRepo())

	_, err := service.UpdateSite(context.Background(), 42, SitePatch{})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

// # Category Tests

func TestCreateCategory_RequiresBothNames(t *testing.T) {
	service := newTestService(newFakeSiteRepo(), newFakeCategoryRepo())

	err := service.CreateCategory(context.Background(), &Category{Name: "Temples"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestUpdateCategory_PartialPatch(t *testing.T) {
	categories := newFakeCategoryRepo()
	service := newTestService(newFakeSiteRepo(), categories)

	category := &Category{Name: "Temples", NameZh: "寺廟"}
	require.NoError(t, service.CreateCategory(context.Background(), category))

	description := "Religious architecture"
	updated, err := service.UpdateCategory(context.Background(), category.ID, CategoryPatch{
		Description: &description,
	})
	require.NoError(t, err)

	assert.Equal(t, "Temples", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Religious architecture", *updated.Description)
}
