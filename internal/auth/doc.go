// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package auth provides credential authentication for MCU Tracker accounts.

Components:

  - JWTManager: issues and validates HS256 tokens carrying {userId, email},
    valid for seven days unless security.session_timeout says otherwise.
  - HashPassword / CheckPassword: bcrypt at the configured cost. A missing
    account is compared against a dummy hash so timing does not leak
    registered emails.
  - LoginGuard: a per-email token bucket (golang.org/x/time/rate) that
    throttles repeated failed logins independently of the per-IP presets
    in internal/ratelimit.
  - Middleware: accepts "Authorization: Bearer <token>" or the HttpOnly
    "token" cookie, stores the claims in the request context, and renders
    failures through an injected ErrorWriter so responses use the API
    envelope.

Role checks live in internal/authz; this package only establishes identity.
*/
package auth
