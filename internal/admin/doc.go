// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package admin is the only write path for catalog overrides.
//
// UpsertOverride validates the item id before touching storage, stamps the
// editor and time, and replaces the whole sparse field set of the record in
// one atomic upsert. Concurrent edits of the same item are last-writer-wins.
// After every successful write the merge engine's override cache is
// invalidated so readers see the change immediately.
//
// PurgeDeadImages clears custom image and backdrop URLs that match the merge
// denylist, for records written before the denylist existed.
package admin
