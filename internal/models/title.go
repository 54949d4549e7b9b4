// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package models

import "strings"

// TitleType distinguishes movies from series.
type TitleType string

// Title types.
const (
	TypeMovie  TitleType = "movie"
	TypeSeries TitleType = "series"
)

// Valid reports whether t is a known title type.
func (t TitleType) Valid() bool {
	return t == TypeMovie || t == TypeSeries
}

// Phase bounds.
const (
	MinPhase = 1
	MaxPhase = 6
)

// Title is a catalog entry. The static catalog holds base records; the merge
// engine returns copies with admin overrides applied (the effective title).
// Both use this shape.
type Title struct {
	ID                 string    `json:"id"`
	Type               TitleType `json:"type"`
	Phase              int       `json:"phase"`
	ChronologicalOrder int       `json:"chronologicalOrder"`
	ReleaseOrder       int       `json:"releaseOrder"`
	ReleaseYear        int       `json:"releaseYear"`

	Duration string  `json:"duration,omitempty"`
	Episodes int     `json:"episodes,omitempty"`
	Seasons  int     `json:"seasons,omitempty"`
	Rating   float64 `json:"rating"`

	Title         string `json:"title"`
	OriginalTitle string `json:"originalTitle"`
	Synopsis      string `json:"synopsis"`
	Description   string `json:"description,omitempty"`

	ImageURL    string `json:"imageUrl"`
	BackdropURL string `json:"backdropUrl,omitempty"`

	TrailerURL          string `json:"trailerUrl,omitempty"`
	TrailerURLDublado   string `json:"trailerUrlDublado,omitempty"`
	TrailerURLLegendado string `json:"trailerUrlLegendado,omitempty"`

	Cast         []string `json:"cast"`
	Genres       []string `json:"genres"`
	WhereToWatch []string `json:"whereToWatch"`

	PostCreditsScenes int    `json:"postCreditsScenes,omitempty"`
	Director          string `json:"director,omitempty"`
	Creator           string `json:"creator,omitempty"`
}

// Clone returns a deep copy so callers can mutate the result without
// touching the immutable catalog.
func (t *Title) Clone() Title {
	c := *t
	c.Cast = cloneStrings(t.Cast)
	c.Genres = cloneStrings(t.Genres)
	c.WhereToWatch = cloneStrings(t.WhereToWatch)
	return c
}

// Maker returns the director for movies and the creator for series, falling
// back to whichever is set.
func (t *Title) Maker() string {
	if t.Director != "" {
		return t.Director
	}
	return t.Creator
}

// Makers returns every credited director and creator as individual names.
// Co-credits are stored comma-separated ("Anthony Russo, Joe Russo").
func (t *Title) Makers() []string {
	var out []string
	for _, credit := range [...]string{t.Director, t.Creator} {
		for _, name := range strings.Split(credit, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// PhaseInfo describes one MCU phase for the timeline view.
type PhaseInfo struct {
	Number      int    `json:"phase"`
	Name        string `json:"name"`
	Subtitle    string `json:"subtitle"`
	Years       string `json:"years"`
	MainVillain string `json:"mainVillain"`
}
