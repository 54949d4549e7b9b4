// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package merge

import (
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
)

func baseTitle() models.Title {
	return models.Title{
		ID:                  "id1",
		Type:                models.TypeMovie,
		Phase:               1,
		ChronologicalOrder:  1,
		ReleaseOrder:        1,
		Title:               "Homem de Ferro",
		Synopsis:            "base synopsis",
		Description:         "base description",
		ImageURL:            "/images/posters/id1.jpg",
		BackdropURL:         "/images/backdrops/id1.jpg",
		TrailerURL:          "https://youtube.com/base",
		TrailerURLDublado:   "https://youtube.com/base-dub",
		TrailerURLLegendado: "https://youtube.com/base-leg",
		Cast:                []string{"Robert Downey Jr."},
	}
}

func TestMerge_NilOverrideIsIdentity(t *testing.T) {
	base := baseTitle()
	got := Merge(&base, nil)
	if !reflect.DeepEqual(got, base) {
		t.Errorf("Merge(base, nil) = %+v, want %+v", got, base)
	}
}

func TestMerge_EveryCatalogTitleIdentity(t *testing.T) {
	titles := catalog.MustDefault().Titles()
	merged := MergeAll(titles, map[string]models.Override{})
	if !reflect.DeepEqual(merged, titles) {
		t.Error("MergeAll with no overrides changed the catalog")
	}
}

func TestMerge_FieldMapping(t *testing.T) {
	tests := []struct {
		name     string
		override models.Override
		get      func(models.Title) string
		want     string
	}{
		{"trailer", models.Override{TrailerURL: "https://t"}, func(t models.Title) string { return t.TrailerURL }, "https://t"},
		{"dubbed trailer", models.Override{TrailerURLDublado: "https://d"}, func(t models.Title) string { return t.TrailerURLDublado }, "https://d"},
		{"subtitled trailer", models.Override{TrailerURLLegendado: "https://l"}, func(t models.Title) string { return t.TrailerURLLegendado }, "https://l"},
		{"image", models.Override{CustomImageURL: "https://img"}, func(t models.Title) string { return t.ImageURL }, "https://img"},
		{"backdrop", models.Override{CustomBackdropURL: "https://bd"}, func(t models.Title) string { return t.BackdropURL }, "https://bd"},
		{"synopsis", models.Override{CustomSynopsis: "new synopsis"}, func(t models.Title) string { return t.Synopsis }, "new synopsis"},
		{"description", models.Override{CustomDescription: "new description"}, func(t models.Title) string { return t.Description }, "new description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := baseTitle()
			got := Merge(&base, &tt.override)
			if v := tt.get(got); v != tt.want {
				t.Errorf("field = %q, want %q", v, tt.want)
			}
		})
	}
}

func TestMerge_EmptyFieldsNeverBlank(t *testing.T) {
	base := baseTitle()
	for _, empty := range []string{"", "   ", "\t\n"} {
		o := models.Override{
			ItemID:              "id1",
			TrailerURL:          empty,
			TrailerURLDublado:   empty,
			TrailerURLLegendado: empty,
			CustomDescription:   empty,
			CustomSynopsis:      empty,
			CustomImageURL:      empty,
			CustomBackdropURL:   empty,
		}
		got := Merge(&base, &o)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("override of %q changed title: %+v", empty, got)
		}
	}
}

func TestMerge_DeniedImagesFallBack(t *testing.T) {
	before := testutil.ToFloat64(metrics.OverrideRejectedURLs.WithLabelValues("customImageUrl"))

	base := baseTitle()
	o := models.Override{
		ItemID:            "id1",
		CustomImageURL:    "https://image.tmdb.org/t/p/w500/7PiOxc7zqIqL9hg8G4imtcaOZKS.jpg",
		CustomBackdropURL: "https://STATIC.WIKIA.NOCOOKIE.NET/marvel/bd.png",
	}
	got := Merge(&base, &o)
	if got.ImageURL != base.ImageURL {
		t.Errorf("ImageURL = %q, want base %q", got.ImageURL, base.ImageURL)
	}
	if got.BackdropURL != base.BackdropURL {
		t.Errorf("BackdropURL = %q, want base %q", got.BackdropURL, base.BackdropURL)
	}
	if d := testutil.ToFloat64(metrics.OverrideRejectedURLs.WithLabelValues("customImageUrl")) - before; d != 1 {
		t.Errorf("rejected URL counter delta = %v, want 1", d)
	}
}

func TestMerge_DubbedTrailerWithDeadImage(t *testing.T) {
	base := baseTitle()
	overrides := map[string]models.Override{
		"id1": {
			ItemID:            "id1",
			TrailerURLDublado: "https://x",
			CustomImageURL:    "https://wikia.nocookie.net/bad.png",
		},
	}

	got := MergeAll([]models.Title{base}, overrides)[0]
	if got.TrailerURLDublado != "https://x" {
		t.Errorf("TrailerURLDublado = %q, want https://x", got.TrailerURLDublado)
	}
	if got.ImageURL != base.ImageURL {
		t.Errorf("ImageURL = %q, want original %q", got.ImageURL, base.ImageURL)
	}
}

func TestMerge_DoesNotAliasBase(t *testing.T) {
	base := baseTitle()
	got := Merge(&base, &models.Override{CustomSynopsis: "x"})
	got.Cast[0] = "mutated"
	if base.Cast[0] == "mutated" {
		t.Error("Merge result shares slices with base")
	}
}

func TestMergeAll_PreservesOrder(t *testing.T) {
	titles := catalog.MustDefault().Titles()
	overrides := map[string]models.Override{
		titles[3].ID: {ItemID: titles[3].ID, CustomSynopsis: "edited"},
	}
	merged := MergeAll(titles, overrides)
	if len(merged) != len(titles) {
		t.Fatalf("len = %d, want %d", len(merged), len(titles))
	}
	for i := range titles {
		if merged[i].ID != titles[i].ID {
			t.Fatalf("merged[%d] = %s, want %s", i, merged[i].ID, titles[i].ID)
		}
	}
	if merged[3].Synopsis != "edited" {
		t.Errorf("merged[3].Synopsis = %q", merged[3].Synopsis)
	}
}

func TestIsDeniedURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://static.wikia.nocookie.net/x.png", true},
		{"https://image.tmdb.org/t/p/original/GLKDFE6BTIRCVB5ZRJSPRFS4LTW.jpg", true},
		{"https://image.tmdb.org/t/p/w500/kSBXou5m7dm65oV1By2h6h5nT5V.jpg", true},
		{"https://image.tmdb.org/t/p/w500/cdkyMYdu8ao26XOBZhH0Znavt7X.jpg", true},
		{"https://image.tmdb.org/t/p/w500/4W6fS3V9K7Y9NdEwLF6V5qk5T3t.jpg", true},
		{"https://image.tmdb.org/t/p/w500/abc123.jpg", false},
		{"/images/posters/iron-man.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDeniedURL(tt.url); got != tt.want {
			t.Errorf("IsDeniedURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestIndex_LastWins(t *testing.T) {
	m := Index([]models.Override{
		{ItemID: "a", CustomSynopsis: "first"},
		{ItemID: "b"},
		{ItemID: "a", CustomSynopsis: "second"},
	})
	if len(m) != 2 {
		t.Fatalf("len = %d, want 2", len(m))
	}
	if m["a"].CustomSynopsis != "second" {
		t.Errorf("a = %q, want second", m["a"].CustomSynopsis)
	}
}
