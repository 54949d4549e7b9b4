// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package merge combines the static catalog with admin overrides into the
// effective catalog served on every read path.
package merge

import (
	"strings"

	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
)

// deadURLFragments are substrings of image hosts and TMDB paths known to
// return 404. Override images containing any of them are ignored.
var deadURLFragments = []string{
	"wikia.nocookie.net",
	"glKDfE6btIRcVB5zrjspRFs4ltW",
	"7PiOxc7zqIqL9hg8G4imtcaOZKS",
	"kSBXou5m7dm65oV1By2h6h5nT5V",
	"cdkyMYdu8ao26XOBZhH0Znavt7X",
	"4W6fS3V9K7Y9NdEwLF6V5qk5T3t",
}

// IsDeniedURL reports whether u contains a known-dead URL fragment.
// Matching is case-insensitive.
func IsDeniedURL(u string) bool {
	lower := strings.ToLower(u)
	for _, frag := range deadURLFragments {
		if strings.Contains(lower, strings.ToLower(frag)) {
			return true
		}
	}
	return false
}

// Merge returns base with the non-empty fields of o applied. Image and
// backdrop overrides must also pass IsDeniedURL. A nil override returns an
// unmodified copy of base.
func Merge(base *models.Title, o *models.Override) models.Title {
	out := base.Clone()
	if o == nil {
		return out
	}

	pick(&out.TrailerURL, o.TrailerURL)
	pick(&out.TrailerURLDublado, o.TrailerURLDublado)
	pick(&out.TrailerURLLegendado, o.TrailerURLLegendado)
	pick(&out.Synopsis, o.CustomSynopsis)
	pick(&out.Description, o.CustomDescription)
	pickImage(&out.ImageURL, o.CustomImageURL, "customImageUrl")
	pickImage(&out.BackdropURL, o.CustomBackdropURL, "customBackdropUrl")

	return out
}

// MergeAll merges every title with its override, preserving catalog order.
func MergeAll(titles []models.Title, overrides map[string]models.Override) []models.Title {
	out := make([]models.Title, len(titles))
	for i := range titles {
		if o, ok := overrides[titles[i].ID]; ok {
			out[i] = Merge(&titles[i], &o)
		} else {
			out[i] = Merge(&titles[i], nil)
		}
	}
	return out
}

// Index keys overrides by item id. A later entry for the same id wins.
func Index(overrides []models.Override) map[string]models.Override {
	m := make(map[string]models.Override, len(overrides))
	for i := range overrides {
		m[overrides[i].ItemID] = overrides[i]
	}
	return m
}

func pick(dst *string, v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	*dst = v
}

func pickImage(dst *string, v, field string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	if IsDeniedURL(v) {
		metrics.OverrideRejectedURLs.WithLabelValues(field).Inc()
		return
	}
	*dst = v
}
