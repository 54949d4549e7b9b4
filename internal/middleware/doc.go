// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package middleware provides the transport-level HTTP middleware shared by
every route: request ID tracking and Prometheus instrumentation.

Authentication lives in internal/auth, authorization in internal/authz and
per-route rate limiting in internal/ratelimit. This package only carries the
concerns that apply to all requests regardless of caller.

Middleware Stack:

The router installs these first, so that every log line and every metric
sample of a request carries the same request ID:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

Metrics:

PrometheusMetrics labels samples with the chi route pattern
("/api/catalog/{id}") instead of the raw path, and with "unmatched" for
requests that matched no route.

Request IDs:

An X-Request-ID sent by an upstream proxy is kept when it is at most 64
printable ASCII characters; otherwise a UUID is generated. The ID is echoed
in the response header and is available through GetRequestID,
logging.RequestIDFromContext and chi's middleware.GetReqID.
*/
package middleware
