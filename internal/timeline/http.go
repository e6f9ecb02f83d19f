// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package timeline's HTTP interface.

# Routing Strategy

  - Public (v1): Chronological listing and single-event reads.
  - Restricted (v1): Writes require the admin role.
*/
package timeline

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiaweilin/meihe/internal/platform/middleware"
	requestutil "github.com/chiaweilin/meihe/internal/platform/request"
	"github.com/chiaweilin/meihe/internal/platform/respond"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/pkg/pagination"
	"github.com/chiaweilin/meihe/pkg/pointer"
	"github.com/chiaweilin/meihe/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the timeline.
type Handler struct {
	service *Service
}

// NewHandler constructs a timeline [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches timeline endpoints under /timeline.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/timeline", func(r chi.Router) {
		// Discovery endpoints
		r.Get("/", handler.List)
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
GET /api/v1/timeline.

Description: Events in chronological order. Unpublished events are hidden
unless an authenticated admin passes published_only=false.

Request:
  - category: string (construction, restoration, cultural, political)
  - published_only: bool (default true)
  - page, limit: pagination

Response:
  - 200: Paginated list of events
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

	events, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if events == nil {
		events = []*Event{}
	}

	respond.Paginated(writer, events, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/timeline/{id}.

Response:
  - 200: Event
  - 404: Timeline event not found
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

// eventRequest defines the inbound JSON schema for event creation.
type eventRequest struct {
	Year          int     `json:"year"`
	Month         *int    `json:"month"`
	Day           *int    `json:"day"`
	Era           *string `json:"era"`
	EraYear       *string `json:"era_year"`
	Title         string  `json:"title"`
	TitleZh       string  `json:"title_zh"`
	Description   *string `json:"description"`
	DescriptionZh *string `json:"description_zh"`
	Image         *string `json:"image"`
	Category      *string `json:"category"`
	Importance    string  `json:"importance"`
	IsPublished   *bool   `json:"is_published"`
}

/*
POST /api/v1/timeline.

Response:
  - 201: Event
  - 400: Validation errors
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input eventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event := &Event{
		Year:          input.Year,
		Month:         input.Month,
		Day:           input.Day,
		Era:           input.Era,
		EraYear:       input.EraYear,
		Title:         input.Title,
		TitleZh:       input.TitleZh,
		Description:   input.Description,
		DescriptionZh: input.DescriptionZh,
		Image:         input.Image,
		Category:      input.Category,
		Importance:    input.Importance,
		// Timeline entries default to published.
		IsPublished: pointer.Fallback(input.IsPublished, true),
	}

	if err := handler.service.Create(request.Context(), event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

// updateEventRequest defines the inbound JSON schema for event patches.
type updateEventRequest struct {
	Year          *int    `json:"year"`
	Month         *int    `json:"month"`
	Day           *int    `json:"day"`
	Era           *string `json:"era"`
	EraYear       *string `json:"era_year"`
	Title         *string `json:"title"`
	TitleZh       *string `json:"title_zh"`
	Description   *string `json:"description"`
	DescriptionZh *string `json:"description_zh"`
	Image         *string `json:"image"`
	Category      *string `json:"category"`
	Importance    *string `json:"importance"`
	IsPublished   *bool   `json:"is_published"`
}

/*
PATCH /api/v1/timeline/{id}.

Response:
  - 200: Event: The updated event
  - 404: Timeline event not found
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateEventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.Update(request.Context(), id, Patch{
		Year:          input.Year,
		Month:         input.Month,
		Day:           input.Day,
		Era:           input.Era,
		EraYear:       input.EraYear,
		Title:         input.Title,
		TitleZh:       input.TitleZh,
		Description:   input.Description,
		DescriptionZh: input.DescriptionZh,
		Image:         input.Image,
		Category:      input.Category,
		Importance:    input.Importance,
		IsPublished:   input.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

/*
DELETE /api/v1/timeline/{id}.

Response:
  - 204: Deleted
  - 404: Timeline event not found
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
