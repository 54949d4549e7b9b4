// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mcutracker/internal/logging"
)

// TaskFunc is one run of a periodic job.
type TaskFunc func(ctx context.Context) error

// PeriodicConfig configures a PeriodicService.
type PeriodicConfig struct {
	// Interval between runs. Required.
	Interval time.Duration

	// Timeout bounds a single run. Zero means Interval.
	Timeout time.Duration

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool
}

// PeriodicService runs a task on a ticker until canceled. A failed run is
// logged and retried at the next tick; it never restarts the service.
type PeriodicService struct {
	name   string
	task   TaskFunc
	config PeriodicConfig
	logger zerolog.Logger
}

// NewPeriodicService creates a periodic service named name.
func NewPeriodicService(name string, task TaskFunc, cfg PeriodicConfig) *PeriodicService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &PeriodicService{
		name:   name,
		task:   task,
		config: cfg,
		logger: logging.WithComponent(name),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Warn().Msg("No interval configured, periodic task disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Debug().Dur("interval", s.config.Interval).Msg("Periodic task starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		s.logger.Warn().Err(err).Msg("Periodic task failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Periodic task complete")
}

// String names the service in supervisor logs.
func (s *PeriodicService) String() string {
	return s.name
}
