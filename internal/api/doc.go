// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package api provides the HTTP interface of the tracker: a chi router, the
handlers behind it and the standardized JSON envelope every response uses.

Response Format:

	{
	  "success": true,
	  "data": { ... },
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors carry a machine-readable code and a Portuguese message:

	{
	  "success": false,
	  "error": {"code": "VALIDATION_FAILED", "message": "Senha muito curta", "details": {...}, "request_id": "..."},
	  "meta": { ... }
	}

Handlers return errors classified by internal/apperr; AppError maps the
kind to the status code and envelope code. Store failures are logged and
reported without their cause.

Route Groups:

  - /api/health: liveness and readiness, permissive httprate limit
  - /api/auth: register, login, logout (auth preset)
  - /api/mcu, /api/catalog: public effective catalog (general preset)
  - /api/user: per-user state behind authentication and RBAC
  - /api/admin: override editing, admin role only (admin preset)
  - /metrics and /swagger: Prometheus and API docs

Rate Limiting:

Two layers apply. A global per-IP ceiling from go-chi/httprate protects the
process, and the per-route presets from internal/ratelimit implement the
documented quotas with X-RateLimit-* headers. Both reject with a 429
envelope whose details carry retryAfter in seconds.
*/
package api
