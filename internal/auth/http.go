// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chiaweilin/meihe/internal/platform/constants"
	"github.com/chiaweilin/meihe/internal/platform/middleware"
	requestutil "github.com/chiaweilin/meihe/internal/platform/request"
	"github.com/chiaweilin/meihe/internal/platform/respond"
	"github.com/chiaweilin/meihe/internal/platform/validate"
)

// CookieSettings controls how the session cookie is scoped.
type CookieSettings struct {
	Domain string
	Secure bool
}

// # Handler Implementation

// Handler implements the HTTP layer for session management.
type Handler struct {
	service *Service
	cookies CookieSettings
}

// NewHandler constructs an auth [Handler].
func NewHandler(service *Service, cookies CookieSettings) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// RegisterRoutes attaches session endpoints under /auth.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/auth", func(r chi.Router) {
		r.Post("/login", handler.Login)

		r.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			protected.Post("/logout", handler.Logout)
			protected.Get("/me", handler.Me)
		})
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/login.

Description: On success the signed session token is set as an HttpOnly cookie
and the account is echoed back. The token never appears in the response body.
*/
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", payload.Email)
	v.Required("password", payload.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, token, err := handler.service.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, token, constants.SessionTTL)
	respond.OK(writer, user)
}

// POST /api/v1/auth/logout.
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	respond.OK(writer, map[string]string{"message": "Logged out"})
}

// GET /api/v1/auth/me.
func (handler *Handler) Me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Cookie Plumbing

func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string, timeToLive time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Domain:   handler.cookies.Domain,
		MaxAge:   int(timeToLive.Seconds()),
		HttpOnly: true,
		Secure:   handler.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		Domain:   handler.cookies.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
