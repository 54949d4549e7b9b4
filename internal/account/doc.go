// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package account implements the per-user operations of the tracker:
registration, login, watch progress, preferences and the derived views
(stats, achievements and share text).

The watched set is persisted as a plain id list; every read goes through
watchstate.FromSlice so callers always see a deduplicated, sorted set.
Achievement state is never stored. Progress writes evaluate achievements
before and after the write and report the ids that became unlocked, then
publish a progress event for the background consumer.

Errors returned by the Service are classified with apperr so the HTTP layer
can map them to status codes without inspecting store internals.
*/
package account
