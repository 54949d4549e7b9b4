// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"context"
	"time"

	"github.com/tomtom215/mcutracker/internal/account"
	"github.com/tomtom215/mcutracker/internal/admin"
	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/merge"
	"github.com/tomtom215/mcutracker/internal/ratelimit"
)

// Pinger reports backend reachability. store.Store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by route group:
//   - handlers_auth.go: register, login, logout
//   - handlers_user.go: progress, preferences, stats, achievements, share
//   - handlers_catalog.go: effective catalog, overrides, timeline, facets
//   - handlers_admin.go: override editing
//   - handlers_health.go: liveness and readiness
type Handler struct {
	accounts   *account.Service
	admin      *admin.Service
	catalog    *merge.Engine
	store      Pinger
	cookies    *auth.Middleware
	identifier *ratelimit.Identifier
	startTime  time.Time
}

// HandlerDeps are the services behind the handlers.
type HandlerDeps struct {
	Accounts *account.Service
	Admin    *admin.Service
	Catalog  *merge.Engine
	Store    Pinger
	// Cookies issues and clears the session cookie.
	Cookies *auth.Middleware
	// Identifier resolves the client address used in security logs.
	Identifier *ratelimit.Identifier
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	ident := deps.Identifier
	if ident == nil {
		ident = ratelimit.NewIdentifier(nil)
	}
	return &Handler{
		accounts:   deps.Accounts,
		admin:      deps.Admin,
		catalog:    deps.Catalog,
		store:      deps.Store,
		cookies:    deps.Cookies,
		identifier: ident,
		startTime:  time.Now(),
	}
}
