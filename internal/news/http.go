// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package news's HTTP interface.

# Routing Strategy

  - Public (v1): Listing and reading published articles.
  - Restricted (v1): Creation, patching, and deletion require the admin role.
*/
package news

import (
	"net/http"
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

// Handler implements the HTTP layer for news.
type Handler struct {
	service *Service
}

// NewHandler constructs a news [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches news endpoints under /news.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/news", func(r chi.Router) {
		// Discovery endpoints
		r.Get("/", handler.List)
		r.Get("/slug/{slug}", handler.GetBySlug)
		r.Get("/{id}", handler.Get)

		// Admin protected endpoints
		r.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			admin.Post("/", handler.Create)
			admin.Patch("/{id}", handler.Update)
			admin.Delete("/{id}", handler.Delete)
		})
	})
}

/*
GET /api/v1/news.

Description: Paginated article listing, most recently published first.
Drafts are hidden unless an authenticated admin passes published_only=false.

Request:
  - category: string (announcement, event, update)
  - published_only: bool (default true)
  - page, limit: pagination

Response:
  - 200: Paginated list of articles
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()

	publishedOnly := true
	if flag := query.Bool(values.Get("published_only")); flag != nil && !*flag {
		if requestutil.Claims(request) != nil {
			publishedOnly = false
		}
	}

	filter := Filter{
		PublishedOnly: publishedOnly,
		Category:      values.Get("category"),
	}

	articles, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if articles == nil {
		articles = []*Article{}
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/news/{id}.

Response:
  - 200: Article
  - 404: News article not found
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
GET /api/v1/news/slug/{slug}.

Response:
  - 200: Article
  - 404: News article not found
*/
func (handler *Handler) GetBySlug(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// articleRequest defines the inbound JSON schema for article creation.
type articleRequest struct {
	Title         string     `json:"title"`
	TitleZh       string     `json:"title_zh"`
	Slug          string     `json:"slug"`
	Summary       *string    `json:"summary"`
	SummaryZh     *string    `json:"summary_zh"`
	Content       *string    `json:"content"`
	ContentZh     *string    `json:"content_zh"`
	FeaturedImage *string    `json:"featured_image"`
	Category      *string    `json:"category"`
	IsPublished   bool       `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at"`
}

/*
POST /api/v1/news.

Response:
  - 201: Article
  - 400: Validation errors
  - 409: Slug already in use
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input articleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article := &Article{
		Title:         input.Title,
		TitleZh:       input.TitleZh,
		Slug:          input.Slug,
		Summary:       input.Summary,
		SummaryZh:     input.SummaryZh,
		Content:       input.Content,
		ContentZh:     input.ContentZh,
		FeaturedImage: input.FeaturedImage,
		Category:      input.Category,
		IsPublished:   input.IsPublished,
		PublishedAt:   input.PublishedAt,
	}

	if err := handler.service.Create(request.Context(), article); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

// updateArticleRequest defines the inbound JSON schema for article patches.
type updateArticleRequest struct {
	Title         *string    `json:"title"`
	TitleZh       *string    `json:"title_zh"`
	Slug          *string    `json:"slug"`
	Summary       *string    `json:"summary"`
	SummaryZh     *string    `json:"summary_zh"`
	Content       *string    `json:"content"`
	ContentZh     *string    `json:"content_zh"`
	FeaturedImage *string    `json:"featured_image"`
	Category      *string    `json:"category"`
	IsPublished   *bool      `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at"`
}

/*
PATCH /api/v1/news/{id}.

Response:
  - 200: Article: The updated article
  - 404: News article not found
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Update(request.Context(), id, Patch{
		Title:         input.Title,
		TitleZh:       input.TitleZh,
		Slug:          input.Slug,
		Summary:       input.Summary,
		SummaryZh:     input.SummaryZh,
		Content:       input.Content,
		ContentZh:     input.ContentZh,
		FeaturedImage: input.FeaturedImage,
		Category:      input.Category,
		IsPublished:   input.IsPublished,
		PublishedAt:   input.PublishedAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
DELETE /api/v1/news/{id}.

Response:
  - 204: Deleted
  - 404: News article not found
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
