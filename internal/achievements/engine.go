// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package achievements

import (
	"strings"

	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/watchstate"
)

// Progress is the current/total pair of a rule.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Status is an achievement with its evaluated state.
type Status struct {
	Achievement
	RarityLabel string   `json:"rarityLabel"`
	Unlocked    bool     `json:"unlocked"`
	Progress    Progress `json:"progress"`
}

// Engine evaluates achievements against a fixed title list. Matching sets are
// resolved once at construction; each Evaluate call recomputes progress from
// the watched set it is given.
type Engine struct {
	defs    []Achievement
	members [][]string // per definition; nil for count rules
	ids     map[string]struct{}
}

// NewEngine builds an engine for titles and defs.
func NewEngine(titles []models.Title, defs []Achievement) *Engine {
	e := &Engine{
		defs:    defs,
		members: make([][]string, len(defs)),
		ids:     make(map[string]struct{}, len(titles)),
	}
	for i := range titles {
		e.ids[titles[i].ID] = struct{}{}
	}
	for i, d := range defs {
		if d.Rule.Kind == KindCount {
			continue
		}
		members := []string{}
		for j := range titles {
			if matches(d.Rule, &titles[j]) {
				members = append(members, titles[j].ID)
			}
		}
		e.members[i] = members
	}
	return e
}

// NewDefaultEngine builds an engine over titles with Definitions.
func NewDefaultEngine(titles []models.Title) *Engine {
	return NewEngine(titles, Definitions())
}

// Definitions returns the achievements this engine evaluates.
func (e *Engine) Definitions() []Achievement {
	return append([]Achievement(nil), e.defs...)
}

// Evaluate returns one status per achievement in declaration order.
func (e *Engine) Evaluate(watched watchstate.WatchedSet) []Status {
	known := 0
	for _, id := range watched.IDs() {
		if _, ok := e.ids[id]; ok {
			known++
		}
	}

	out := make([]Status, len(e.defs))
	for i, d := range e.defs {
		var p Progress
		if d.Rule.Kind == KindCount {
			p = Progress{Current: min(known, d.Rule.Count), Total: d.Rule.Count}
		} else {
			p.Total = len(e.members[i])
			for _, id := range e.members[i] {
				if watched.Contains(id) {
					p.Current++
				}
			}
		}
		out[i] = Status{
			Achievement: d,
			RarityLabel: d.Rarity.Label(),
			Unlocked:    p.Current == p.Total,
			Progress:    p,
		}
	}
	return out
}

func matches(r Rule, t *models.Title) bool {
	switch r.Kind {
	case KindCatalog:
		return true
	case KindPhase:
		return t.Phase == r.Phase
	case KindType:
		return t.Type == r.Type
	case KindKeywords:
		title := strings.ToLower(t.Title)
		original := strings.ToLower(t.OriginalTitle)
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(title, kw) || strings.Contains(original, kw) {
				return true
			}
		}
	}
	return false
}

// Unlocked returns the unlocked statuses.
func Unlocked(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if s.Unlocked {
			out = append(out, s)
		}
	}
	return out
}

// InProgress returns statuses that are started but not unlocked.
func InProgress(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Unlocked && s.Progress.Current > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Summary counts unlocked achievements.
type Summary struct {
	Unlocked   int `json:"unlocked"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Summarize returns the Summary of statuses.
func Summarize(statuses []Status) Summary {
	n := len(Unlocked(statuses))
	return Summary{
		Unlocked:   n,
		Total:      len(statuses),
		Percentage: watchstate.Percent(n, len(statuses)),
	}
}

// NewlyUnlocked returns the ids unlocked in after but not in before.
func NewlyUnlocked(before, after []Status) []string {
	was := make(map[string]bool, len(before))
	for _, s := range before {
		was[s.ID] = s.Unlocked
	}
	out := []string{}
	for _, s := range after {
		if s.Unlocked && !was[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}
