// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package main

import (
	"context"
	"errors"
	"os"

	"github.com/tomtom215/mcutracker/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Server exited with error")
		}
		os.Exit(1)
	}
}
