// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package merge

import (
	"context"
	"errors"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
)

const breakerName = "override-store"

// OverrideSource lists every stored override.
type OverrideSource interface {
	ListOverrides(ctx context.Context) ([]models.Override, error)
}

// Engine produces the effective catalog. Override reads go through a circuit
// breaker; any failure falls back to the static catalog so reads never fail.
//
// The breaker uses wall-clock time for its interval and timeout. Tests that
// need to observe a state change drive it with failures rather than a clock.
type Engine struct {
	catalog *catalog.Catalog
	source  OverrideSource
	cb      *gobreaker.CircuitBreaker[[]models.Override]

	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	cached   map[string]models.Override
	cachedAt time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithCacheTTL keeps a successful override read for ttl. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithClock overrides time.Now for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over cat and source.
func NewEngine(cat *catalog.Catalog, source OverrideSource, cfg config.BreakerConfig, opts ...Option) *Engine {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	e := &Engine{
		catalog: cat,
		source:  source,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.cb = gobreaker.NewCircuitBreaker[[]models.Override](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening override circuit")
			}
			return shouldTrip
		},
		// A caller giving up is not a store fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return e
}

// Catalog returns the static catalog the engine merges onto.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Overrides returns the override mapping keyed by item id. On store failure
// it returns an empty mapping and ok=false.
func (e *Engine) Overrides(ctx context.Context) (overrides map[string]models.Override, ok bool) {
	if m, hit := e.fromCache(); hit {
		return m, true
	}

	list, err := e.execute(ctx)
	if err != nil {
		metrics.OverrideFallbacks.Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("Override store unavailable, serving static catalog")
		return map[string]models.Override{}, false
	}

	m := Index(list)
	e.store(m)
	return m, true
}

// Titles returns the effective catalog in catalog order.
func (e *Engine) Titles(ctx context.Context) []models.Title {
	overrides, _ := e.Overrides(ctx)
	return MergeAll(e.catalog.Titles(), overrides)
}

// Title returns one effective title.
func (e *Engine) Title(ctx context.Context, id string) (models.Title, bool) {
	base, ok := e.catalog.Get(id)
	if !ok {
		return models.Title{}, false
	}
	overrides, _ := e.Overrides(ctx)
	if o, found := overrides[id]; found {
		return Merge(&base, &o), true
	}
	return base, true
}

// Invalidate drops the cached override set so the next read hits the store.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.cached = nil
	e.mu.Unlock()
}

// State returns the breaker state name.
func (e *Engine) State() string {
	return stateToString(e.cb.State())
}

func (e *Engine) execute(ctx context.Context) ([]models.Override, error) {
	list, err := e.cb.Execute(func() ([]models.Override, error) {
		return e.source.ListOverrides(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			counts := e.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)
	return list, nil
}

func (e *Engine) fromCache() (map[string]models.Override, bool) {
	if e.ttl <= 0 {
		return nil, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.cached == nil || e.now().Sub(e.cachedAt) >= e.ttl {
		return nil, false
	}
	return e.cached, true
}

func (e *Engine) store(m map[string]models.Override) {
	if e.ttl <= 0 {
		return
	}
	e.mu.Lock()
	e.cached = m
	e.cachedAt = e.now()
	e.mu.Unlock()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
