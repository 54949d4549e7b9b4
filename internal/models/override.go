// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package models

import "time"

// Override is an admin-supplied sparse set of field replacements for one
// catalog title, keyed by ItemID. Empty fields mean "keep the base value".
type Override struct {
	ItemID string `json:"itemId" bson:"itemId"`

	TrailerURL          string `json:"trailerUrl,omitempty" bson:"trailerUrl,omitempty"`
	TrailerURLDublado   string `json:"trailerUrlDublado,omitempty" bson:"trailerUrlDublado,omitempty"`
	TrailerURLLegendado string `json:"trailerUrlLegendado,omitempty" bson:"trailerUrlLegendado,omitempty"`
	CustomDescription   string `json:"customDescription,omitempty" bson:"customDescription,omitempty"`
	CustomSynopsis      string `json:"customSynopsis,omitempty" bson:"customSynopsis,omitempty"`
	CustomImageURL      string `json:"customImageUrl,omitempty" bson:"customImageUrl,omitempty"`
	CustomBackdropURL   string `json:"customBackdropUrl,omitempty" bson:"customBackdropUrl,omitempty"`

	UpdatedBy string    `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// OverrideFields is the public projection served to anonymous clients: the
// overridable fields without editor metadata.
type OverrideFields struct {
	TrailerURL          string `json:"trailerUrl,omitempty"`
	TrailerURLDublado   string `json:"trailerUrlDublado,omitempty"`
	TrailerURLLegendado string `json:"trailerUrlLegendado,omitempty"`
	CustomDescription   string `json:"customDescription,omitempty"`
	CustomSynopsis      string `json:"customSynopsis,omitempty"`
	CustomImageURL      string `json:"customImageUrl,omitempty"`
	CustomBackdropURL   string `json:"customBackdropUrl,omitempty"`
}

// Fields returns the public projection of o.
func (o *Override) Fields() OverrideFields {
	return OverrideFields{
		TrailerURL:          o.TrailerURL,
		TrailerURLDublado:   o.TrailerURLDublado,
		TrailerURLLegendado: o.TrailerURLLegendado,
		CustomDescription:   o.CustomDescription,
		CustomSynopsis:      o.CustomSynopsis,
		CustomImageURL:      o.CustomImageURL,
		CustomBackdropURL:   o.CustomBackdropURL,
	}
}
