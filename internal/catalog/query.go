// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/mcutracker/internal/models"
)

// Order selects one of the two catalog rankings.
type Order string

// Supported orders.
const (
	OrderChronological Order = "chronological"
	OrderRelease       Order = "release"
)

// ParseOrder maps a query value to an Order. Empty means chronological.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderChronological:
		return OrderChronological, nil
	case OrderRelease:
		return OrderRelease, nil
	default:
		return "", fmt.Errorf("order must be chronological or release")
	}
}

// ParseType maps a filter value to a title type. "", "all" yield "" (no filter);
// the plural forms used by the home page filter bar are accepted.
func ParseType(s string) (models.TitleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case "movie", "movies":
		return models.TypeMovie, nil
	case "series":
		return models.TypeSeries, nil
	default:
		return "", fmt.Errorf("type must be all, movie or series")
	}
}

// Query filters and orders titles. Zero fields do not filter.
// Years and Makers match any of their values.
type Query struct {
	Type   models.TitleType
	Phase  int
	Years  []int
	Makers []string
	Search string
	Order  Order
}

// Apply returns the titles matching q, sorted by q.Order.
func Apply(titles []models.Title, q Query) []models.Title {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Title, 0, len(titles))
	for i := range titles {
		t := &titles[i]
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if q.Phase != 0 && t.Phase != q.Phase {
			continue
		}
		if len(q.Years) > 0 && !containsInt(q.Years, t.ReleaseYear) {
			continue
		}
		if len(q.Makers) > 0 && !matchesMaker(q.Makers, t) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.OriginalTitle), search) {
			continue
		}
		out = append(out, *t)
	}
	Sort(out, q.Order)
	return out
}

// Sort orders titles in place by chronological (default) or release rank.
func Sort(titles []models.Title, order Order) {
	if order == OrderRelease {
		sort.SliceStable(titles, func(i, j int) bool { return titles[i].ReleaseOrder < titles[j].ReleaseOrder })
		return
	}
	sort.SliceStable(titles, func(i, j int) bool { return titles[i].ChronologicalOrder < titles[j].ChronologicalOrder })
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func matchesMaker(makers []string, t *models.Title) bool {
	credited := t.Makers()
	for _, m := range makers {
		for _, c := range credited {
			if strings.EqualFold(m, c) {
				return true
			}
		}
	}
	return false
}

// PhaseGroup is one phase of the timeline.
type PhaseGroup struct {
	models.PhaseInfo
	Titles []models.Title `json:"titles"`
	Movies int            `json:"movies"`
	Series int            `json:"series"`
}

// Timeline groups titles by phase (ascending), each group ordered by order.
// Phases without titles are omitted.
func (c *Catalog) Timeline(titles []models.Title, order Order) []PhaseGroup {
	byPhase := make(map[int][]models.Title)
	for i := range titles {
		byPhase[titles[i].Phase] = append(byPhase[titles[i].Phase], titles[i])
	}

	nums := make([]int, 0, len(byPhase))
	for n := range byPhase {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	groups := make([]PhaseGroup, 0, len(nums))
	for _, n := range nums {
		g := PhaseGroup{PhaseInfo: c.Phase(n), Titles: byPhase[n]}
		Sort(g.Titles, order)
		for i := range g.Titles {
			if g.Titles[i].Type == models.TypeMovie {
				g.Movies++
			} else {
				g.Series++
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// Facets lists the distinct filter values present in a title list.
type Facets struct {
	Years  []int    `json:"years"`
	Makers []string `json:"directors"`
}

// FacetsOf returns distinct release years (ascending) and individual
// directors/creators (sorted). Every maker facet is a valid Makers filter.
func FacetsOf(titles []models.Title) Facets {
	years := make(map[int]struct{})
	makers := make(map[string]struct{})
	for i := range titles {
		years[titles[i].ReleaseYear] = struct{}{}
		for _, m := range titles[i].Makers() {
			makers[m] = struct{}{}
		}
	}

	f := Facets{Years: make([]int, 0, len(years)), Makers: make([]string, 0, len(makers))}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	for m := range makers {
		f.Makers = append(f.Makers, m)
	}
	sort.Ints(f.Years)
	sort.Strings(f.Makers)
	return f
}
