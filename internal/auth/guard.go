// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginGuard throttles failed logins per email with a token bucket. Each
// failure spends a token; tokens refill one per refill interval up to the
// configured burst. A successful login clears the bucket.
type LoginGuard struct {
	mu       sync.Mutex
	limiters map[string]*guardEntry
	refill   rate.Limit
	burst    int
	now      func() time.Time
}

type guardEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginGuard creates a guard allowing attempts failures before refill
// must elapse for another. A non-positive attempts disables the guard.
func NewLoginGuard(attempts int, refill time.Duration) *LoginGuard {
	if refill <= 0 {
		refill = time.Minute
	}
	return &LoginGuard{
		limiters: make(map[string]*guardEntry),
		refill:   rate.Every(refill),
		burst:    attempts,
		now:      time.Now,
	}
}

// Allow reports whether email may attempt a login now, and if not, how long
// until the next attempt is possible. It does not spend a token.
func (g *LoginGuard) Allow(email string) (bool, time.Duration) {
	if g == nil || g.burst <= 0 {
		return true, 0
	}

	g.mu.Lock()
	entry, ok := g.limiters[email]
	g.mu.Unlock()
	if !ok {
		return true, 0
	}

	now := g.now()
	if entry.limiter.TokensAt(now) >= 1 {
		return true, 0
	}
	r := entry.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// Fail records a failed attempt for email.
func (g *LoginGuard) Fail(email string) {
	if g == nil || g.burst <= 0 {
		return
	}

	now := g.now()
	g.mu.Lock()
	entry, ok := g.limiters[email]
	if !ok {
		entry = &guardEntry{limiter: rate.NewLimiter(g.refill, g.burst)}
		g.limiters[email] = entry
	}
	entry.lastAccess = now
	g.mu.Unlock()

	entry.limiter.AllowN(now, 1)
}

// Succeed clears the failure history of email.
func (g *LoginGuard) Succeed(email string) {
	if g == nil {
		return
	}
	g.mu.Lock()
	delete(g.limiters, email)
	g.mu.Unlock()
}

// Sweep drops buckets untouched for longer than maxIdle and returns how many
// were removed.
func (g *LoginGuard) Sweep(maxIdle time.Duration) int {
	if g == nil {
		return 0
	}
	threshold := g.now().Add(-maxIdle)

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for email, entry := range g.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(g.limiters, email)
			removed++
		}
	}
	return removed
}
