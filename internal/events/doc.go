// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package events fans progress changes out to in-process consumers over a
// Watermill GoChannel pub/sub.
//
// Topics:
//
//	progress.updated      one message per saved or toggled watched set
//	achievement.unlocked  one message per achievement newly unlocked by a save
//
// Publishing never blocks a request on consumers: the GoChannel buffers
// events.buffer_size messages per subscriber and publish errors are only
// logged by callers. Messages are JSON (goccy/go-json) and carry the request
// correlation id in their metadata.
//
// Consumer is the supervised subscriber; it records metrics and logs each
// event.
package events
