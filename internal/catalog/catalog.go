// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package catalog holds the static, build-time list of MCU titles.
//
// The catalog is embedded in the binary (data/titles.json, data/phases.json),
// validated once at load, and never mutated afterwards. Every accessor returns
// copies so callers cannot alter the shared records.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mcutracker/internal/models"
)

//go:embed data/titles.json data/phases.json
var dataFS embed.FS

// ErrInvalidCatalog is wrapped by every validation failure in New.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable ordered set of titles.
type Catalog struct {
	titles []models.Title
	byID   map[string]int
	phases []models.PhaseInfo
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, loading it on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for program start-up; it panics on a broken build.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Load parses and validates the embedded catalog data.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/titles.json")
	if err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}
	var titles []models.Title
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil, fmt.Errorf("decode titles: %w", err)
	}

	raw, err = dataFS.ReadFile("data/phases.json")
	if err != nil {
		return nil, fmt.Errorf("read phases: %w", err)
	}
	var phases []models.PhaseInfo
	if err := json.Unmarshal(raw, &phases); err != nil {
		return nil, fmt.Errorf("decode phases: %w", err)
	}

	return New(titles, phases)
}

// New builds a Catalog after checking its invariants: unique non-empty ids,
// known types, phases within range, and chronologicalOrder and releaseOrder
// each forming a duplicate-free ranking.
func New(titles []models.Title, phases []models.PhaseInfo) (*Catalog, error) {
	c := &Catalog{
		titles: make([]models.Title, 0, len(titles)),
		byID:   make(map[string]int, len(titles)),
		phases: append([]models.PhaseInfo(nil), phases...),
	}
	chron := make(map[int]string, len(titles))
	release := make(map[int]string, len(titles))

	for i := range titles {
		t := &titles[i]
		if t.ID == "" {
			return nil, fmt.Errorf("%w: title at index %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, t.ID)
		}
		if !t.Type.Valid() {
			return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidCatalog, t.ID, t.Type)
		}
		if t.Phase < models.MinPhase || t.Phase > models.MaxPhase {
			return nil, fmt.Errorf("%w: %s has phase %d outside %d..%d", ErrInvalidCatalog, t.ID, t.Phase, models.MinPhase, models.MaxPhase)
		}
		if t.Rating < 0 || t.Rating > 10 {
			return nil, fmt.Errorf("%w: %s has rating %.1f outside 0..10", ErrInvalidCatalog, t.ID, t.Rating)
		}
		if other, dup := chron[t.ChronologicalOrder]; dup {
			return nil, fmt.Errorf("%w: %s and %s share chronologicalOrder %d", ErrInvalidCatalog, other, t.ID, t.ChronologicalOrder)
		}
		if other, dup := release[t.ReleaseOrder]; dup {
			return nil, fmt.Errorf("%w: %s and %s share releaseOrder %d", ErrInvalidCatalog, other, t.ID, t.ReleaseOrder)
		}
		chron[t.ChronologicalOrder] = t.ID
		release[t.ReleaseOrder] = t.ID
		c.byID[t.ID] = len(c.titles)
		c.titles = append(c.titles, t.Clone())
	}
	return c, nil
}

// Len returns the number of titles.
func (c *Catalog) Len() int {
	return len(c.titles)
}

// Titles returns a copy of every title in catalog order.
func (c *Catalog) Titles() []models.Title {
	out := make([]models.Title, len(c.titles))
	for i := range c.titles {
		out[i] = c.titles[i].Clone()
	}
	return out
}

// Get returns the title with the given id.
func (c *Catalog) Get(id string) (models.Title, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Title{}, false
	}
	return c.titles[i].Clone(), true
}

// Contains reports whether id names a catalog title.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Phases returns phase metadata ordered by phase number.
func (c *Catalog) Phases() []models.PhaseInfo {
	return append([]models.PhaseInfo(nil), c.phases...)
}

// Phase returns metadata for phase n, or a bare record when none is defined.
func (c *Catalog) Phase(n int) models.PhaseInfo {
	for _, p := range c.phases {
		if p.Number == n {
			return p
		}
	}
	return models.PhaseInfo{Number: n, Name: fmt.Sprintf("Fase %d", n)}
}
