// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// @title MCU Tracker API
// @version 1.0
// @description Watch-progress tracker for the Marvel Cinematic Universe catalog.
// @description
// @description ## Authentication
// @description
// @description Login returns a JWT and also sets it as the HTTP-only `token` cookie.
// @description Protected routes accept either the cookie or an `Authorization: Bearer` header.
// @description
// @description ## Rate Limiting
// @description
// @description Fixed one-minute windows per client: auth 10, progress 30, admin 50, everything else 100.
// @description Rejections return 429 with `Retry-After` and `error.details.retryAfter`.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "VALIDATION_FAILED", "message": "Email inválido", "request_id": "..."},
// @description   "meta": {"request_id": "...", "timestamp": "2026-01-01T12:00:00Z", "duration_ms": 1}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/mcutracker/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer <token>", or the token cookie set by /api/auth/login.
//
// @tag.name Auth
// @tag.description Registration, login and logout
//
// @tag.name User
// @tag.description Watch progress, preferences and derived views of the signed-in user
//
// @tag.name Catalog
// @tag.description Effective catalog with admin overrides applied
//
// @tag.name Admin
// @tag.description Override editing for administrators
//
// @tag.name Health
// @tag.description Liveness and readiness probes
package main
