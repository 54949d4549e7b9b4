// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package ratelimit implements a fixed-window request limiter.

The first request for an identifier opens a window that ends Interval later.
Requests inside the window are counted and allowed while the count is at most
MaxRequests. The first request at or after the window end opens a new one.

Counters live in a Store passed to NewLimiter. MemoryStore keeps them in
process; a restart resets every window. Expired windows are reclaimed by
Sweep, which the supervisor calls once a minute.

	store := ratelimit.NewMemoryStore()
	limiter := ratelimit.NewLimiter(store, time.Now)
	r.With(ratelimit.Middleware(limiter, ratelimit.Auth, opts)).Post("/login", h)
*/
package ratelimit
