// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package ratelimit

import (
	"time"

	"github.com/tomtom215/mcutracker/internal/metrics"
)

// Config is the quota of one window.
type Config struct {
	MaxRequests int
	Interval    time.Duration
}

// Result is the outcome of a Check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, at least 1.
func (r Result) RetryAfter(now time.Time) int {
	d := r.ResetAt.Sub(now)
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Limiter applies fixed-window quotas over a Store.
type Limiter struct {
	store Store
	now   func() time.Time
}

// NewLimiter creates a limiter. A nil clock uses time.Now.
func NewLimiter(store Store, clock func() time.Time) *Limiter {
	if clock == nil {
		clock = time.Now
	}
	return &Limiter{store: store, now: clock}
}

// Check counts a request for identifier against cfg.
func (l *Limiter) Check(identifier string, cfg Config) Result {
	w := l.store.Hit(identifier, l.now(), cfg.Interval)
	return Result{
		Allowed:   w.Count <= cfg.MaxRequests,
		Limit:     cfg.MaxRequests,
		Remaining: max(0, cfg.MaxRequests-w.Count),
		ResetAt:   w.ResetAt,
	}
}

// Now returns the limiter's clock reading.
func (l *Limiter) Now() time.Time {
	return l.now()
}

// Sweep drops expired windows and records the outcome.
func (l *Limiter) Sweep() int {
	removed := l.store.Sweep(l.now())
	metrics.RecordRateLimitSweep(removed, l.store.Len())
	return removed
}
