// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package services adapts tracker components to suture.Service.

  - HTTPServerService: ListenAndServe with a bounded graceful Shutdown.
  - RunnerService: any blocking Run(ctx) error, such as the event consumer.
  - PeriodicService: a ticker-driven task, used for limiter sweeps and
    Badger value-log GC.

Every wrapper implements fmt.Stringer so sutureslog can name it.
*/
package services
