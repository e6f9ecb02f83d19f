// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package heritage's HTTP interface.

# Routing Strategy

  - Public (v1): Site and category discovery (GET /heritage/sites, GET
    /heritage/categories). Public listings only show published sites.
  - Restricted (v1): Mutative endpoints requiring the admin role, plus an
    unpublished-included listing via ?published_only=false.
*/
package heritage

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chiaweilin/meihe/internal/platform/middleware"
	requestutil "github.com/chiaweilin/meihe/internal/platform/request"
	"github.com/chiaweilin/meihe/internal/platform/respond"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/pkg/pagination"
	"github.com/chiaweilin/meihe/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for heritage content.
type Handler struct {
	service *Service
}

// NewHandler constructs a heritage [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches heritage endpoints under /heritage.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/heritage", func(r chi.Router) {
		// Discovery endpoints
		r.Get("/sites", handler.ListSites)
		r.Get("/sites/slug/{slug}", handler.GetSiteBySlug)
		r.Get("/sites/{id}", handler.GetSite)
		r.Get("/categories", handler.ListCategories)

		// Admin protected endpoints
		r.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))

			admin.Post("/sites", handler.CreateSite)
			admin.Patch("/sites/{id}", handler.UpdateSite)
			admin.Delete("/sites/{id}", handler.DeleteSite)

			admin.Post("/categories", handler.CreateCategory)
			admin.Patch("/categories/{id}", handler.UpdateCategory)
			admin.Delete("/categories/{id}", handler.DeleteCategory)
		})
	})
}

// # Site Endpoints

/*
GET /api/v1/heritage/sites.

Description: Paginated site listing. Drafts are hidden unless an
authenticated admin passes published_only=false.

Request:
  - city: string
  - category_id: int
  - published_only: bool (default true; false requires authentication)
  - page, limit: pagination

Response:
  - 200: Paginated list of sites with categories
*/
func (handler *Handler) ListSites(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()

	// Drafts stay hidden from anonymous visitors regardless of the flag.
	publishedOnly := true
	if flag := query.Bool(values.Get("published_only")); flag != nil && !*flag {
		if requestutil.Claims(request) != nil {
			publishedOnly = false
		}
	}

	categoryID, _ := strconv.Atoi(values.Get("category_id"))

	filter := Filter{
		PublishedOnly: publishedOnly,
		City:          values.Get("city"),
		CategoryID:    categoryID,
	}

	sites, total, err := handler.service.ListSites(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sites == nil {
		sites = []*Site{}
	}

	respond.Paginated(writer, sites, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/heritage/sites/{id}.

Response:
  - 200: Site
  - 404: Heritage site not found
*/
func (handler *Handler) GetSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.GetSite(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, site)
}

/*
GET /api/v1/heritage/sites/slug/{slug}.

Response:
  - 200: Site
  - 404: Heritage site not found
*/
func (handler *Handler) GetSiteBySlug(writer http.ResponseWriter, request *http.Request) {
	site, err := handler.service.GetSiteBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, site)
}

// siteRequest defines the inbound JSON schema for site creation.
type siteRequest struct {
	Name             string     `json:"name"`
	NameZh           string     `json:"name_zh"`
	Slug             string     `json:"slug"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Description      *string    `json:"description"`
	DescriptionZh    *string    `json:"description_zh"`
	History          *string    `json:"history"`
	HistoryZh        *string    `json:"history_zh"`
	FeaturedImage    *string    `json:"featured_image"`
	Images           []string   `json:"images"`
	DesignationLevel *string    `json:"designation_level"`
	DesignationDate  *time.Time `json:"designation_date"`
	IsPublished      bool       `json:"is_published"`
	CategoryID       *int       `json:"category_id"`
}

/*
POST /api/v1/heritage/sites.

Description: Creates a site. The slug is derived from the English name when
omitted.

Response:
  - 201: Site
  - 400: Validation errors
  - 403: Admin role required
  - 409: Slug already in use
*/
func (handler *Handler) CreateSite(writer http.ResponseWriter, request *http.Request) {
	var input siteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	site := &Site{
		Name:             input.Name,
		NameZh:           input.NameZh,
		Slug:             input.Slug,
		Address:          input.Address,
		City:             input.City,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		Description:      input.Description,
		DescriptionZh:    input.DescriptionZh,
		History:          input.History,
		HistoryZh:        input.HistoryZh,
		FeaturedImage:    input.FeaturedImage,
		Images:           input.Images,
		DesignationLevel: input.DesignationLevel,
		DesignationDate:  input.DesignationDate,
		IsPublished:      input.IsPublished,
		CategoryID:       input.CategoryID,
	}

	if err := handler.service.CreateSite(request.Context(), site); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, site)
}

// updateSiteRequest defines the inbound JSON schema for site patches.
type updateSiteRequest struct {
	Name             *string    `json:"name"`
	NameZh           *string    `json:"name_zh"`
	Slug             *string    `json:"slug"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Description      *string    `json:"description"`
	DescriptionZh    *string    `json:"description_zh"`
	History          *string    `json:"history"`
	HistoryZh        *string    `json:"history_zh"`
	FeaturedImage    *string    `json:"featured_image"`
	Images           []string   `json:"images"`
	DesignationLevel *string    `json:"designation_level"`
	DesignationDate  *time.Time `json:"designation_date"`
	IsPublished      *bool      `json:"is_published"`
	CategoryID       *int       `json:"category_id"`
}

/*
PATCH /api/v1/heritage/sites/{id}.

Response:
  - 200: Site: The updated site
  - 404: Heritage site not found
*/
func (handler *Handler) UpdateSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateSiteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.UpdateSite(request.Context(), id, SitePatch{
		Name:             input.Name,
		NameZh:           input.NameZh,
		Slug:             input.Slug,
		Address:          input.Address,
		City:             input.City,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		Description:      input.Description,
		DescriptionZh:    input.DescriptionZh,
		History:          input.History,
		HistoryZh:        input.HistoryZh,
		FeaturedImage:    input.FeaturedImage,
		Images:           input.Images,
		DesignationLevel: input.DesignationLevel,
		DesignationDate:  input.DesignationDate,
		IsPublished:      input.IsPublished,
		CategoryID:       input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, site)
}

/*
DELETE /api/v1/heritage/sites/{id}.

Response:
  - 204: Deleted
  - 404: Heritage site not found
*/
func (handler *Handler) DeleteSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSite(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Category Endpoints

/*
GET /api/v1/heritage/categories.

Response:
  - 200: []Category
*/
func (handler *Handler) ListCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if categories == nil {
		categories = []*Category{}
	}

	respond.OK(writer, categories)
}

// categoryRequest defines the inbound JSON schema for category writes.
type categoryRequest struct {
	Name        string  `json:"name"`
	NameZh      string  `json:"name_zh"`
	Description *string `json:"description"`
}

/*
POST /api/v1/heritage/categories.

Response:
  - 201: Category
  - 409: Category name already exists
*/
func (handler *Handler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{
		Name:        input.Name,
		NameZh:      input.NameZh,
		Description: input.Description,
	}

	if err := handler.service.CreateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// updateCategoryRequest defines the inbound JSON schema for category patches.
type updateCategoryRequest struct {
	Name        *string `json:"name"`
	NameZh      *string `json:"name_zh"`
	Description *string `json:"description"`
}

/*
PATCH /api/v1/heritage/categories/{id}.

Response:
  - 200: Category
  - 404: Heritage category not found
*/
func (handler *Handler) UpdateCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), id, CategoryPatch{
		Name:        input.Name,
		NameZh:      input.NameZh,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
DELETE /api/v1/heritage/categories/{id}.

Response:
  - 204: Deleted
  - 404: Heritage category not found
*/
func (handler *Handler) DeleteCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
