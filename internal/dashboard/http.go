// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiaweilin/meihe/internal/platform/middleware"
	"github.com/chiaweilin/meihe/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the admin dashboard.
type Handler struct {
	service *Service
}

// NewHandler constructs a dashboard [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches dashboard endpoints under /dashboard.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/stats", handler.Stats)
	})
}

// GET /api/v1/dashboard/stats.
func (handler *Handler) Stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
