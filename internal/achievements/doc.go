// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package achievements evaluates badge rules against a watched set.

Rules are data: a kind plus its parameters (a count, a phase, a title type or
a keyword group). Unlock state is never stored. Every call to Evaluate scans
the rule membership lists again, so a status always reflects the set it was
given.

	engine := achievements.NewDefaultEngine(catalog.MustDefault().Titles())
	statuses := engine.Evaluate(watched)
	summary := achievements.Summarize(statuses)

For every rule, Progress.Current never decreases as ids are added, and
Unlocked is true exactly when Current equals Total. A rule whose group is
empty is therefore complete at 0/0.
*/
package achievements
