// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/authz"
	"github.com/tomtom215/mcutracker/internal/middleware"
	"github.com/tomtom215/mcutracker/internal/ratelimit"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware
	limiter       *ratelimit.Limiter
	limitOpts     ratelimit.MiddlewareOptions
}

// RouterDeps are the middleware components of the router.
type RouterDeps struct {
	ChiConfig  *ChiMiddlewareConfig
	Authn      *auth.Middleware
	Authz      *authz.Middleware
	Limiter    *ratelimit.Limiter
	Identifier *ratelimit.Identifier
	// RateLimitDisabled turns off the per-route presets.
	RateLimitDisabled bool
}

// NewRouter creates a router for handler.
func NewRouter(handler *Handler, deps RouterDeps) *Router {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.NewLimiter(ratelimit.NewMemoryStore(), nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(deps.ChiConfig),
		authn:         deps.Authn,
		authz:         deps.Authz,
		limiter:       limiter,
		limitOpts: ratelimit.MiddlewareOptions{
			Identifier: deps.Identifier,
			Reject:     rejectRateLimited,
			Disabled:   deps.RateLimitDisabled,
		},
	}
}

// rejectRateLimited writes the 429 envelope for the per-route presets.
func rejectRateLimited(w http.ResponseWriter, r *http.Request, _ ratelimit.Result, retryAfter int) {
	NewResponseWriter(w, r).TooManyRequests(retryAfter)
}

// preset returns the per-route limiter for p.
func (router *Router) preset(p ratelimit.Preset) func(http.Handler) http.Handler {
	return ratelimit.Middleware(router.limiter, p, router.limitOpts)
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global Middleware Stack
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.SecurityHeaders)

		// Health Endpoints
		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			// Authentication Endpoints
			r.Route("/auth", func(r chi.Router) {
				r.Use(router.preset(ratelimit.Auth))
				r.Post("/register", h.Register)
				r.Post("/login", h.Login)
				r.Post("/logout", h.Logout)
			})

			// Public catalog
			r.Group(func(r chi.Router) {
				r.Use(router.preset(ratelimit.General))
				r.Get("/mcu", h.ListOverrides)
				r.Get("/catalog", h.ListCatalog)
				r.Get("/catalog/timeline", h.Timeline)
				r.Get("/catalog/facets", h.Facets)
				r.Get("/catalog/{id}", h.GetTitle)
			})

			// Per-user endpoints
			r.Route("/user", func(r chi.Router) {
				r.Use(router.authn.Authenticate)
				r.Use(router.authz.Authorize)

				r.Group(func(r chi.Router) {
					r.Use(router.preset(ratelimit.Progress))
					r.Get("/progress", h.GetProgress)
					r.Post("/progress", h.SaveProgress)
					r.Post("/progress/toggle", h.ToggleProgress)
					r.Get("/preferences", h.GetPreferences)
					r.Patch("/preferences", h.PatchPreferences)
				})

				r.Group(func(r chi.Router) {
					r.Use(router.preset(ratelimit.General))
					r.Get("/stats", h.GetStats)
					r.Get("/achievements", h.GetAchievements)
					r.Get("/share", h.GetShare)
				})
			})

			// Admin endpoints
			r.Route("/admin", func(r chi.Router) {
				r.Use(router.preset(ratelimit.Admin))
				r.Use(router.authn.Authenticate)
				r.Use(router.authz.Authorize)

				r.Get("/mcu-items", h.AdminListOverrides)
				r.Post("/mcu-items", h.AdminUpsertOverride)
				r.Post("/mcu-items/purge-dead-images", h.AdminPurgeDeadImages)
			})
		})
	})

	// Prometheus Metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
