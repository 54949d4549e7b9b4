// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package watchstate

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/tomtom215/mcutracker/internal/models"
)

// Defaults for StatsConfig.
const (
	DefaultMinutesPerEpisode = 45
	DefaultPreviewCount      = 5
)

var durationPattern = regexp.MustCompile(`(\d+)h\s*(\d+)?`)

// StatsConfig tunes the heuristics used by ComputeStats.
type StatsConfig struct {
	// MinutesPerEpisode estimates series runtime when no duration parses.
	MinutesPerEpisode int
	// PreviewCount caps NextUp and RecentlyWatched.
	PreviewCount int
}

// DefaultStatsConfig returns the stock heuristics.
func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		MinutesPerEpisode: DefaultMinutesPerEpisode,
		PreviewCount:      DefaultPreviewCount,
	}
}

// Progress is a watched/total pair.
type Progress struct {
	Total      int `json:"total"`
	Watched    int `json:"watched"`
	Percentage int `json:"percentage"`
}

// PhaseProgress is Progress for one phase.
type PhaseProgress struct {
	Phase int `json:"phase"`
	Progress
}

// Runtime is the accumulated watch time.
type Runtime struct {
	TotalMinutes int `json:"totalMinutes"`
	Hours        int `json:"hours"`
	Days         int `json:"days"`
	Minutes      int `json:"minutes"`
}

// Stats summarises a watched set against the effective catalog.
type Stats struct {
	Total     int `json:"total"`
	Watched   int `json:"watched"`
	Unwatched int `json:"unwatched"`
	// Percentage is the overall completion, rounded.
	Percentage int `json:"percentage"`

	Movies Progress        `json:"movies"`
	Series Progress        `json:"series"`
	Phases []PhaseProgress `json:"phases"`

	Runtime Runtime `json:"runtime"`

	NextUp          []models.Title `json:"nextUp"`
	RecentlyWatched []models.Title `json:"recentlyWatched"`
}

// Percent returns round(watched/total*100), or 0 when total is 0.
func Percent(watched, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(watched) / float64(total) * 100))
}

func progress(watched, total int) Progress {
	return Progress{Total: total, Watched: watched, Percentage: Percent(watched, total)}
}

// TitleMinutes returns the runtime of t in minutes. A parseable "Xh Ymin"
// duration wins; otherwise series contribute episodes*minutesPerEpisode.
func TitleMinutes(t *models.Title, minutesPerEpisode int) int {
	if t.Duration != "" {
		if m := durationPattern.FindStringSubmatch(t.Duration); m != nil {
			h, _ := strconv.Atoi(m[1])
			mins, _ := strconv.Atoi(m[2])
			return h*60 + mins
		}
	}
	if t.Episodes > 0 {
		return t.Episodes * minutesPerEpisode
	}
	return 0
}

// ComputeStats derives statistics for watched over titles. Ids in watched
// that are not in titles are ignored.
func ComputeStats(watched WatchedSet, titles []models.Title, cfg StatsConfig) Stats {
	if cfg.MinutesPerEpisode <= 0 {
		cfg.MinutesPerEpisode = DefaultMinutesPerEpisode
	}
	if cfg.PreviewCount <= 0 {
		cfg.PreviewCount = DefaultPreviewCount
	}

	var (
		st            Stats
		movies, shows Progress
		phaseTotal    [models.MaxPhase + 1]int
		phaseWatched  [models.MaxPhase + 1]int
		minutes       int
		unwatched     []models.Title
		seen          []models.Title
	)

	for i := range titles {
		t := &titles[i]
		w := watched.Contains(t.ID)

		st.Total++
		switch t.Type {
		case models.TypeMovie:
			movies.Total++
		case models.TypeSeries:
			shows.Total++
		}
		if t.Phase >= models.MinPhase && t.Phase <= models.MaxPhase {
			phaseTotal[t.Phase]++
		}

		if !w {
			unwatched = append(unwatched, *t)
			continue
		}

		st.Watched++
		switch t.Type {
		case models.TypeMovie:
			movies.Watched++
		case models.TypeSeries:
			shows.Watched++
		}
		if t.Phase >= models.MinPhase && t.Phase <= models.MaxPhase {
			phaseWatched[t.Phase]++
		}
		minutes += TitleMinutes(t, cfg.MinutesPerEpisode)
		seen = append(seen, *t)
	}

	st.Unwatched = st.Total - st.Watched
	st.Percentage = Percent(st.Watched, st.Total)
	st.Movies = progress(movies.Watched, movies.Total)
	st.Series = progress(shows.Watched, shows.Total)

	st.Phases = make([]PhaseProgress, 0, models.MaxPhase)
	for p := models.MinPhase; p <= models.MaxPhase; p++ {
		st.Phases = append(st.Phases, PhaseProgress{
			Phase:    p,
			Progress: progress(phaseWatched[p], phaseTotal[p]),
		})
	}

	hours := minutes / 60
	st.Runtime = Runtime{
		TotalMinutes: minutes,
		Hours:        hours,
		Days:         hours / 24,
		Minutes:      minutes % 60,
	}

	sort.SliceStable(unwatched, func(i, j int) bool {
		return unwatched[i].ChronologicalOrder < unwatched[j].ChronologicalOrder
	})
	sort.SliceStable(seen, func(i, j int) bool {
		return seen[i].ReleaseOrder > seen[j].ReleaseOrder
	})
	st.NextUp = capTitles(unwatched, cfg.PreviewCount)
	st.RecentlyWatched = capTitles(seen, cfg.PreviewCount)

	return st
}

func capTitles(ts []models.Title, n int) []models.Title {
	if len(ts) > n {
		ts = ts[:n]
	}
	if ts == nil {
		return []models.Title{}
	}
	return ts
}
