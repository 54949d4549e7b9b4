// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package models defines the data structures shared across MCU Tracker.

Key Structures:

  - Title: a catalog entry (movie or series); base and effective titles share it
  - PhaseInfo: phase metadata for the timeline view
  - Override: admin-supplied sparse field replacements keyed by title id
  - User: persisted account with watched items and preferences
  - Preferences / PreferencesPatch: UI flags and their partial update form

Usage:
  - Catalog loading in internal/catalog
  - Merge rules in internal/merge
  - Persistence in internal/store (Badger and MongoDB)
  - HTTP payloads in internal/api
*/
package models
