// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package models

import "testing"

func TestTitleClone_IsDeep(t *testing.T) {
	t.Parallel()

	orig := Title{ID: "iron-man", Cast: []string{"Robert Downey Jr."}, Genres: []string{"Ação"}}
	c := orig.Clone()
	c.Cast[0] = "changed"
	c.Genres = append(c.Genres, "Drama")

	if orig.Cast[0] != "Robert Downey Jr." {
		t.Errorf("Clone shares Cast backing array: %v", orig.Cast)
	}
	if len(orig.Genres) != 1 {
		t.Errorf("Clone shares Genres: %v", orig.Genres)
	}
}

func TestTitleMaker(t *testing.T) {
	t.Parallel()

	movie := Title{Director: "Jon Favreau"}
	series := Title{Creator: "Jac Schaeffer"}
	if got := movie.Maker(); got != "Jon Favreau" {
		t.Errorf("movie.Maker() = %q", got)
	}
	if got := series.Maker(); got != "Jac Schaeffer" {
		t.Errorf("series.Maker() = %q", got)
	}
}

func TestTitleMakers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title Title
		want  []string
	}{
		{"single director", Title{Director: "Jon Favreau"}, []string{"Jon Favreau"}},
		{"co-directors", Title{Director: "Anthony Russo, Joe Russo"}, []string{"Anthony Russo", "Joe Russo"}},
		{"director and creator", Title{Director: "Kari Skogland", Creator: "Malcolm Spellman"}, []string{"Kari Skogland", "Malcolm Spellman"}},
		{"stray separators", Title{Creator: " ,Jac Schaeffer, "}, []string{"Jac Schaeffer"}},
		{"uncredited", Title{}, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.title.Makers()
			if len(got) != len(tt.want) {
				t.Fatalf("Makers() = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Makers() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestPreferencesPatch(t *testing.T) {
	t.Parallel()

	if !(PreferencesPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}

	yes := true
	ver := "2.1.0"
	p := PreferencesPatch{HideOnboarding: &yes, LastSeenVersion: &ver}
	if p.Empty() {
		t.Fatal("patch with fields reported empty")
	}

	got := p.Apply(DefaultPreferences())
	want := Preferences{HideOnboarding: true, LastSeenVersion: "2.1.0"}
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}

func TestPreferencesWithDefaults(t *testing.T) {
	t.Parallel()

	if got := (Preferences{}).WithDefaults().LastSeenVersion; got != "0.0.0" {
		t.Errorf("LastSeenVersion = %q, want 0.0.0", got)
	}
}

func TestUserRole(t *testing.T) {
	t.Parallel()

	if (&User{IsAdmin: true}).Role() != RoleAdmin {
		t.Error("admin user should have admin role")
	}
	if (&User{}).Role() != RoleUser {
		t.Error("plain user should have user role")
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Tony@Stark.COM "); got != "tony@stark.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
