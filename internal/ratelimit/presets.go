// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package ratelimit

import "time"

// Preset is a named quota. The name also namespaces the counters so that one
// client has an independent window per preset.
type Preset struct {
	Name string
	Config
}

// Endpoint presets.
var (
	General  = Preset{Name: "general", Config: Config{MaxRequests: 100, Interval: time.Minute}}
	Auth     = Preset{Name: "auth", Config: Config{MaxRequests: 10, Interval: time.Minute}}
	Progress = Preset{Name: "progress", Config: Config{MaxRequests: 30, Interval: time.Minute}}
	Admin    = Preset{Name: "admin", Config: Config{MaxRequests: 50, Interval: time.Minute}}
)

// Key returns the store key for identifier under p.
func (p Preset) Key(identifier string) string {
	return p.Name + ":" + identifier
}
