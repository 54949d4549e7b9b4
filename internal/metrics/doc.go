// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package metrics provides Prometheus instrumentation for MCU Tracker.

Metrics are registered on the default registry through promauto and exposed
at /metrics by the API router.

# Overview

The package provides metrics for:
  - HTTP request latency, throughput and in-flight count
  - Store operation latency and errors per backend (badger, mongo)
  - Circuit breaker state guarding override reads
  - Override merge fallbacks and admin upserts
  - Fixed-window rate limiter rejections and tracked identifiers
  - Login and registration outcomes
  - Progress updates, achievement unlocks and event bus throughput

# Usage

	start := time.Now()
	err := store.UpsertOverride(ctx, o)
	metrics.RecordStoreOperation("badger", "upsert_override", time.Since(start), err)
*/
package metrics
