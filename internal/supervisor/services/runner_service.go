// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package services

import (
	"context"
	"errors"
	"fmt"
)

// Runner blocks until ctx is canceled or it fails. *events.Consumer
// satisfies it.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerService supervises a Runner.
type RunnerService struct {
	name   string
	runner Runner
}

// NewRunnerService wraps runner under name.
func NewRunnerService(name string, runner Runner) *RunnerService {
	return &RunnerService{name: name, runner: runner}
}

// Serve implements suture.Service. A Runner that returns nil while ctx is
// still live is treated as a failure so the supervisor restarts it.
func (s *RunnerService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("exited without error")
	}
	return fmt.Errorf("%s: %w", s.name, err)
}

// String names the service in supervisor logs.
func (s *RunnerService) String() string {
	return s.name
}
