// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package achievements

import (
	"reflect"
	"testing"

	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/watchstate"
)

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	return NewDefaultEngine(catalog.MustDefault().Titles())
}

func statusByID(statuses []Status, id string) Status {
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	return Status{}
}

func TestDefinitions_Order(t *testing.T) {
	want := []string{
		"first-watch", "getting-started", "fan", "veteran", "completionist",
		"phase1-complete", "phase2-complete", "phase3-complete", "phase4-complete", "phase5-complete",
		"avengers-assembled", "movie-buff", "series-binger", "iron-man-saga",
		"guardian-fan", "spider-verse", "thor-saga", "captain-saga",
	}
	var got []string
	for _, s := range defaultEngine(t).Evaluate(watchstate.WatchedSet{}) {
		got = append(got, s.ID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v", got)
	}
}

func TestEvaluate_EmptySet(t *testing.T) {
	for _, s := range defaultEngine(t).Evaluate(watchstate.WatchedSet{}) {
		if s.Unlocked {
			t.Errorf("%s unlocked with nothing watched", s.ID)
		}
		if s.Progress.Current != 0 {
			t.Errorf("%s current = %d", s.ID, s.Progress.Current)
		}
		if s.Progress.Total == 0 {
			t.Errorf("%s has an empty matching set", s.ID)
		}
	}
}

func TestEvaluate_KeywordGroups(t *testing.T) {
	e := defaultEngine(t)
	tests := []struct {
		id    string
		ids   []string
		total int
	}{
		{"avengers-assembled", []string{"avengers", "avengers-age-of-ultron", "avengers-infinity-war", "avengers-endgame", "avengers-doomsday"}, 5},
		{"iron-man-saga", []string{"iron-man", "iron-man-2", "iron-man-3"}, 3},
		{"guardian-fan", []string{"guardians-of-the-galaxy", "guardians-of-the-galaxy-2", "guardians-holiday-special", "guardians-of-the-galaxy-3"}, 4},
		{"spider-verse", []string{"spider-man-homecoming", "spider-man-far-from-home", "spider-man-no-way-home", "spider-man-brand-new-day"}, 4},
		{"thor-saga", []string{"thor", "thor-dark-world", "thor-ragnarok", "thor-love-and-thunder"}, 4},
		{"captain-saga", []string{"captain-america-first-avenger", "captain-america-winter-soldier", "captain-america-civil-war", "captain-america-brave-new-world"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			partial := watchstate.FromSlice(tt.ids[:len(tt.ids)-1])
			s := statusByID(e.Evaluate(partial), tt.id)
			if s.Unlocked {
				t.Error("unlocked with one title missing")
			}
			if s.Progress != (Progress{Current: tt.total - 1, Total: tt.total}) {
				t.Errorf("partial progress = %+v", s.Progress)
			}

			s = statusByID(e.Evaluate(watchstate.FromSlice(tt.ids)), tt.id)
			if !s.Unlocked || s.Progress.Current != tt.total {
				t.Errorf("full set status = %+v", s)
			}
		})
	}
}

func TestEvaluate_CountRulesIgnoreUnknownIDs(t *testing.T) {
	e := defaultEngine(t)
	s := statusByID(e.Evaluate(watchstate.NewSet("bogus-1", "bogus-2")), "first-watch")
	if s.Unlocked || s.Progress.Current != 0 {
		t.Errorf("first-watch = %+v, want locked 0/1", s)
	}

	s = statusByID(e.Evaluate(watchstate.NewSet("iron-man", "bogus")), "first-watch")
	if !s.Unlocked || s.Progress != (Progress{1, 1}) {
		t.Errorf("first-watch = %+v, want unlocked 1/1", s)
	}
}

func TestEvaluate_PhaseOneAndCompletionist(t *testing.T) {
	cat := catalog.MustDefault()
	e := NewDefaultEngine(cat.Titles())

	var all, phase1 watchstate.WatchedSet
	for _, ti := range cat.Titles() {
		all.Add(ti.ID)
		if ti.Phase == 1 {
			phase1.Add(ti.ID)
		}
	}

	st := e.Evaluate(phase1)
	if !statusByID(st, "phase1-complete").Unlocked {
		t.Error("phase1-complete locked after watching phase 1")
	}
	if statusByID(st, "phase2-complete").Unlocked {
		t.Error("phase2-complete unlocked")
	}
	if !statusByID(st, "getting-started").Unlocked {
		t.Error("getting-started locked after six titles")
	}

	st = e.Evaluate(all)
	if got := Summarize(st); got.Unlocked != len(st) || got.Percentage != 100 {
		t.Errorf("Summarize(all) = %+v", got)
	}
	if c := statusByID(st, "completionist"); c.Progress.Total != cat.Len() {
		t.Errorf("completionist total = %d, want %d", c.Progress.Total, cat.Len())
	}
}

func TestEvaluate_ProgressMonotone(t *testing.T) {
	cat := catalog.MustDefault()
	e := NewDefaultEngine(cat.Titles())

	var watched watchstate.WatchedSet
	prev := e.Evaluate(watched)
	for _, ti := range cat.Titles() {
		watched.Add(ti.ID)
		cur := e.Evaluate(watched)
		for i := range cur {
			if cur[i].Progress.Current < prev[i].Progress.Current {
				t.Fatalf("%s progress decreased after adding %s", cur[i].ID, ti.ID)
			}
			if cur[i].Unlocked != (cur[i].Progress.Current == cur[i].Progress.Total) {
				t.Fatalf("%s unlocked=%v with %+v", cur[i].ID, cur[i].Unlocked, cur[i].Progress)
			}
		}
		prev = cur
	}
}

func TestEvaluate_EmptyGroupIsVacuouslyComplete(t *testing.T) {
	e := NewEngine(
		[]models.Title{{ID: "a", Type: models.TypeMovie, Phase: 1, Title: "A"}},
		[]Achievement{{ID: "series", Rarity: Legendary, Rule: OfType(models.TypeSeries)}},
	)
	for _, watched := range []watchstate.WatchedSet{watchstate.NewSet(), watchstate.NewSet("a")} {
		s := e.Evaluate(watched)[0]
		if !s.Unlocked || s.Progress.Total != 0 || s.Progress.Current != 0 {
			t.Errorf("Evaluate(%v) = %+v, want unlocked with 0/0", watched.IDs(), s)
		}
	}
}

func TestHelpers(t *testing.T) {
	e := defaultEngine(t)
	before := e.Evaluate(watchstate.NewSet("iron-man", "iron-man-2"))
	after := e.Evaluate(watchstate.NewSet("iron-man", "iron-man-2", "iron-man-3"))

	if got := NewlyUnlocked(before, after); !reflect.DeepEqual(got, []string{"iron-man-saga"}) {
		t.Errorf("NewlyUnlocked = %v", got)
	}
	if got := NewlyUnlocked(after, after); len(got) != 0 {
		t.Errorf("NewlyUnlocked(same) = %v", got)
	}

	for _, s := range InProgress(before) {
		if s.Unlocked || s.Progress.Current == 0 {
			t.Errorf("InProgress returned %+v", s)
		}
	}
	if len(Unlocked(before)) != 1 {
		t.Errorf("Unlocked(before) = %d, want 1 (first-watch)", len(Unlocked(before)))
	}
}

func TestRarityLabel(t *testing.T) {
	tests := map[Rarity]string{Common: "Comum", Rare: "Raro", Epic: "Épico", Legendary: "Lendário"}
	for r, want := range tests {
		if got := r.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", r, got, want)
		}
	}
}
