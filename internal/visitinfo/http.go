// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package visitinfo's HTTP interface.

# Routing Strategy

  - Public (v1): Active sections, in display order; lookup by stable key.
  - Restricted (v1): Writes require the admin role.
*/
package visitinfo

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiaweilin/meihe/internal/platform/middleware"
	requestutil "github.com/chiaweilin/meihe/internal/platform/request"
	"github.com/chiaweilin/meihe/internal/platform/respond"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/pkg/pointer"
	"github.com/chiaweilin/meihe/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for visitor information.
type Handler struct {
	service *Service
}

// NewHandler constructs a visit-info [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches visit-info endpoints under /visit-info.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/visit-info", func(r chi.Router) {
		// Discovery endpoints
		r.Get("/", handler.List)
		r.Get("/section/{section}", handler.GetByKey)
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
GET /api/v1/visit-info.

Description: Sections in display order. Inactive sections appear only for
authenticated admins passing active_only=false.

Request:
  - active_only: bool (default true)

Response:
  - 200: []Section
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	activeOnly := true
	if flag := query.Bool(request.URL.Query().Get("active_only")); flag != nil && !*flag {
		if requestutil.Claims(request) != nil {
			activeOnly = false
		}
	}

	sections, err := handler.service.List(request.Context(), activeOnly)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sections == nil {
		sections = []*Section{}
	}

	respond.OK(writer, sections)
}

/*
GET /api/v1/visit-info/{id}.

Response:
  - 200: Section
  - 404: Visit info section not found
*/
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

/*
GET /api/v1/visit-info/section/{section}.

Response:
  - 200: Section
  - 404: Visit info section not found
*/
func (handler *Handler) GetByKey(writer http.ResponseWriter, request *http.Request) {
	section, err := handler.service.GetByKey(request.Context(), requestutil.Param(request, "section"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

// sectionRequest defines the inbound JSON schema for section creation.
type sectionRequest struct {
	Section      string          `json:"section"`
	Title        string          `json:"title"`
	TitleZh      string          `json:"title_zh"`
	Content      *string         `json:"content"`
	ContentZh    *string         `json:"content_zh"`
	ExtraData    json.RawMessage `json:"extra_data"`
	DisplayOrder int             `json:"display_order"`
	IsActive     *bool           `json:"is_active"`
}

/*
POST /api/v1/visit-info.

Response:
  - 201: Section
  - 400: Validation errors
  - 409: Section key already exists
*/
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input sectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section := &Section{
		Key:          input.Section,
		Title:        input.Title,
		TitleZh:      input.TitleZh,
		Content:      input.Content,
		ContentZh:    input.ContentZh,
		ExtraData:    input.ExtraData,
		DisplayOrder: input.DisplayOrder,
		// New sections are visible unless explicitly created inactive.
		IsActive: pointer.Fallback(input.IsActive, true),
	}

	if err := handler.service.Create(request.Context(), section); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, section)
}

// updateSectionRequest defines the inbound JSON schema for section patches.
type updateSectionRequest struct {
	Section      *string         `json:"section"`
	Title        *string         `json:"title"`
	TitleZh      *string         `json:"title_zh"`
	Content      *string         `json:"content"`
	ContentZh    *string         `json:"content_zh"`
	ExtraData    json.RawMessage `json:"extra_data"`
	DisplayOrder *int            `json:"display_order"`
	IsActive     *bool           `json:"is_active"`
}

/*
PATCH /api/v1/visit-info/{id}.

Response:
  - 200: Section: The updated section
  - 404: Visit info section not found
*/
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateSectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, err := handler.service.Update(request.Context(), id, Patch{
		Key:          input.Section,
		Title:        input.Title,
		TitleZh:      input.TitleZh,
		Content:      input.Content,
		ContentZh:    input.ContentZh,
		ExtraData:    input.ExtraData,
		DisplayOrder: input.DisplayOrder,
		IsActive:     input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, section)
}

/*
DELETE /api/v1/visit-info/{id}.

Response:
  - 204: Deleted
  - 404: Visit info section not found
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
