// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/metrics"
)

// RejectFunc writes the response for a rejected request.
type RejectFunc func(w http.ResponseWriter, r *http.Request, res Result, retryAfter int)

// MiddlewareOptions configures Middleware.
type MiddlewareOptions struct {
	Identifier *Identifier
	// Reject writes the 429 body. Nil writes a bare 429.
	Reject RejectFunc
	// Disabled passes every request through, for test environments.
	Disabled bool
}

// Middleware enforces preset for every request, keyed by client identifier.
// Every response carries the X-RateLimit-* headers; rejections also carry
// Retry-After.
func Middleware(l *Limiter, preset Preset, opts MiddlewareOptions) func(http.Handler) http.Handler {
	ident := opts.Identifier
	if ident == nil {
		ident = NewIdentifier(nil)
	}
	security := logging.NewSecurityLogger()

	return func(next http.Handler) http.Handler {
		if opts.Disabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ident.ClientIdentifier(r)
			res := l.Check(preset.Key(client), preset.Config)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retryAfter := res.RetryAfter(l.Now())
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				metrics.RecordRateLimitRejection(preset.Name)
				security.LogRateLimited(client, r.URL.Path, retryAfter)

				if opts.Reject != nil {
					opts.Reject(w, r, res, retryAfter)
				} else {
					http.Error(w, "Too many requests", http.StatusTooManyRequests)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
