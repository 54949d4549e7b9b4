// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package admin

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/merge"
	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/store"
	"github.com/tomtom215/mcutracker/internal/validation"
)

// UpsertRequest is the admin edit payload. Omitted or empty fields clear the
// stored value, which makes the base catalog value visible again.
type UpsertRequest struct {
	ItemID              string `json:"itemId" validate:"notblank,max=100"`
	TrailerURL          string `json:"trailerUrl,omitempty" validate:"omitempty,max=2048"`
	TrailerURLDublado   string `json:"trailerUrlDublado,omitempty" validate:"omitempty,max=2048"`
	TrailerURLLegendado string `json:"trailerUrlLegendado,omitempty" validate:"omitempty,max=2048"`
	CustomDescription   string `json:"customDescription,omitempty" validate:"omitempty,max=5000"`
	CustomSynopsis      string `json:"customSynopsis,omitempty" validate:"omitempty,max=5000"`
	CustomImageURL      string `json:"customImageUrl,omitempty" validate:"omitempty,max=2048"`
	CustomBackdropURL   string `json:"customBackdropUrl,omitempty" validate:"omitempty,max=2048"`
}

// Invalidator drops cached override state. *merge.Engine satisfies it.
type Invalidator interface {
	Invalidate()
}

// PurgeResult reports a dead-image purge.
type PurgeResult struct {
	Scanned int      `json:"scanned"`
	Purged  []string `json:"purged"`
}

// Service implements the admin edit pipeline.
type Service struct {
	overrides store.OverrideStore
	catalog   *catalog.Catalog
	cache     Invalidator
	security  *logging.SecurityLogger
	now       func() time.Time
}

// NewService creates the pipeline. cache may be nil.
func NewService(overrides store.OverrideStore, cat *catalog.Catalog, cache Invalidator) *Service {
	return &Service{
		overrides: overrides,
		catalog:   cat,
		cache:     cache,
		security:  logging.NewSecurityLogger(),
		now:       time.Now,
	}
}

// ListOverrides returns every override sorted by item id.
func (s *Service) ListOverrides(ctx context.Context) ([]models.Override, error) {
	return s.overrides.ListOverrides(ctx)
}

// UpsertOverride validates req and stores it as editor's edit.
func (s *Service) UpsertOverride(ctx context.Context, editor string, req UpsertRequest) (models.Override, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return models.Override{}, verr
	}

	if s.catalog != nil && !s.catalog.Contains(req.ItemID) {
		logging.Ctx(ctx).Warn().
			Str("item_id", req.ItemID).
			Str("editor", logging.SanitizeEmail(editor)).
			Msg("Override written for an item that is not in the catalog")
	}

	now := s.now().UTC()
	stored, err := s.overrides.UpsertOverride(ctx, models.Override{
		ItemID:              req.ItemID,
		TrailerURL:          strings.TrimSpace(req.TrailerURL),
		TrailerURLDublado:   strings.TrimSpace(req.TrailerURLDublado),
		TrailerURLLegendado: strings.TrimSpace(req.TrailerURLLegendado),
		CustomDescription:   req.CustomDescription,
		CustomSynopsis:      req.CustomSynopsis,
		CustomImageURL:      strings.TrimSpace(req.CustomImageURL),
		CustomBackdropURL:   strings.TrimSpace(req.CustomBackdropURL),
		UpdatedBy:           editor,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return models.Override{}, err
	}

	metrics.OverrideUpserts.Inc()
	s.security.LogOverrideEdited(editor, req.ItemID)
	s.invalidate()

	return stored, nil
}

// PurgeDeadImages clears denylisted image and backdrop URLs from every
// stored override and returns the ids that changed.
func (s *Service) PurgeDeadImages(ctx context.Context, editor string) (PurgeResult, error) {
	list, err := s.overrides.ListOverrides(ctx)
	if err != nil {
		return PurgeResult{}, err
	}

	result := PurgeResult{Scanned: len(list), Purged: []string{}}
	for i := range list {
		o := list[i]
		changed := false
		if o.CustomImageURL != "" && merge.IsDeniedURL(o.CustomImageURL) {
			o.CustomImageURL = ""
			changed = true
		}
		if o.CustomBackdropURL != "" && merge.IsDeniedURL(o.CustomBackdropURL) {
			o.CustomBackdropURL = ""
			changed = true
		}
		if !changed {
			continue
		}

		o.UpdatedBy = editor
		o.UpdatedAt = s.now().UTC()
		if _, err := s.overrides.UpsertOverride(ctx, o); err != nil {
			return result, err
		}
		result.Purged = append(result.Purged, o.ItemID)
	}

	if len(result.Purged) > 0 {
		s.invalidate()
	}
	logging.Ctx(ctx).Info().
		Int("scanned", result.Scanned).
		Int("purged", len(result.Purged)).
		Msg("Dead image purge complete")

	return result, nil
}

func (s *Service) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
