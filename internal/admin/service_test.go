// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/store"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

func newTestService(t *testing.T) (*Service, *store.BadgerStore, *countingInvalidator) {
	t.Helper()

	st, err := store.OpenBadger(config.StoreConfig{BadgerInMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cache := &countingInvalidator{}
	svc := NewService(st, catalog.MustDefault(), cache)
	return svc, st, cache
}

func TestUpsertOverride_ValidatesBeforeStorage(t *testing.T) {
	svc, st, cache := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"", "   "} {
		_, err := svc.UpsertOverride(ctx, "admin@example.com", UpsertRequest{ItemID: id, TrailerURL: "https://x"})
		if !apperr.Is(err, apperr.Validation) {
			t.Errorf("UpsertOverride(%q) error = %v, want validation", id, err)
		}
	}

	list, err := st.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("ListOverrides() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("store touched by invalid request: %v", list)
	}
	if cache.calls != 0 {
		t.Errorf("cache invalidated %d times for invalid requests", cache.calls)
	}
}

func TestUpsertOverride_TwiceKeepsOneRecord(t *testing.T) {
	svc, _, cache := newTestService(t)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	before := testutil.ToFloat64(metrics.OverrideUpserts)

	if _, err := svc.UpsertOverride(ctx, "a@example.com", UpsertRequest{
		ItemID:     "iron-man",
		TrailerURL: "https://youtube.com/watch?v=first",
	}); err != nil {
		t.Fatalf("UpsertOverride() error = %v", err)
	}

	second := first.Add(time.Hour)
	svc.now = func() time.Time { return second }
	got, err := svc.UpsertOverride(ctx, "b@example.com", UpsertRequest{
		ItemID:            " iron-man ",
		TrailerURLDublado: "https://youtube.com/watch?v=dub",
	})
	if err != nil {
		t.Fatalf("UpsertOverride() error = %v", err)
	}

	if got.TrailerURL != "" || got.TrailerURLDublado != "https://youtube.com/watch?v=dub" {
		t.Errorf("stored fields = %+v, want second call's field set", got)
	}
	if got.UpdatedBy != "b@example.com" || !got.UpdatedAt.Equal(second) {
		t.Errorf("stamp = %q/%v", got.UpdatedBy, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, first)
	}

	list, err := svc.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("ListOverrides() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListOverrides() = %d records, want 1", len(list))
	}
	if cache.calls != 2 {
		t.Errorf("cache invalidations = %d, want 2", cache.calls)
	}
	if delta := testutil.ToFloat64(metrics.OverrideUpserts) - before; delta != 2 {
		t.Errorf("upsert counter delta = %v, want 2", delta)
	}
}

func TestUpsertOverride_UnknownItemAllowed(t *testing.T) {
	svc, _, _ := newTestService(t)

	got, err := svc.UpsertOverride(context.Background(), "a@example.com", UpsertRequest{ItemID: "not-in-catalog"})
	if err != nil {
		t.Fatalf("UpsertOverride() error = %v", err)
	}
	if got.ItemID != "not-in-catalog" {
		t.Errorf("ItemID = %q", got.ItemID)
	}
}

func TestListOverrides_Sorted(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"thor", "black-panther", "iron-man"} {
		if _, err := svc.UpsertOverride(ctx, "a@example.com", UpsertRequest{ItemID: id}); err != nil {
			t.Fatalf("UpsertOverride(%s) error = %v", id, err)
		}
	}

	list, err := svc.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("ListOverrides() error = %v", err)
	}
	want := []string{"black-panther", "iron-man", "thor"}
	for i, o := range list {
		if o.ItemID != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, o.ItemID, want[i])
		}
	}
}

func TestPurgeDeadImages(t *testing.T) {
	svc, st, cache := newTestService(t)
	ctx := context.Background()

	seed := []models.Override{
		{ItemID: "iron-man", CustomImageURL: "https://static.wikia.nocookie.net/x.jpg", CustomBackdropURL: "https://ok/bd.jpg"},
		{ItemID: "thor", CustomBackdropURL: "https://image.tmdb.org/t/p/original/glKDfE6btIRcVB5zrjspRFs4ltW.jpg"},
		{ItemID: "hulk", CustomImageURL: "https://image.tmdb.org/t/p/w500/fine.jpg"},
	}
	for _, o := range seed {
		if _, err := st.UpsertOverride(ctx, o); err != nil {
			t.Fatalf("seed UpsertOverride() error = %v", err)
		}
	}

	res, err := svc.PurgeDeadImages(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("PurgeDeadImages() error = %v", err)
	}
	if res.Scanned != 3 || len(res.Purged) != 2 {
		t.Errorf("result = %+v, want 3 scanned, 2 purged", res)
	}
	if cache.calls != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.calls)
	}

	ironMan, err := st.GetOverride(ctx, "iron-man")
	if err != nil {
		t.Fatalf("GetOverride() error = %v", err)
	}
	if ironMan.CustomImageURL != "" || ironMan.CustomBackdropURL != "https://ok/bd.jpg" {
		t.Errorf("iron-man after purge = %+v", ironMan)
	}
	if ironMan.UpdatedBy != "admin@example.com" {
		t.Errorf("UpdatedBy = %q", ironMan.UpdatedBy)
	}

	hulk, err := st.GetOverride(ctx, "hulk")
	if err != nil {
		t.Fatalf("GetOverride() error = %v", err)
	}
	if hulk.CustomImageURL == "" {
		t.Error("clean image URL was purged")
	}
}

type failingOverrides struct{ store.OverrideStore }

func (failingOverrides) ListOverrides(context.Context) ([]models.Override, error) {
	return nil, apperr.Wrap(errors.New("down"), apperr.StoreUnavailable, "list overrides")
}

func (failingOverrides) UpsertOverride(context.Context, models.Override) (models.Override, error) {
	return models.Override{}, apperr.Wrap(errors.New("down"), apperr.StoreUnavailable, "upsert override")
}

func TestService_StoreFailuresSurface(t *testing.T) {
	svc := NewService(failingOverrides{}, nil, nil)
	ctx := context.Background()

	if _, err := svc.ListOverrides(ctx); !apperr.Is(err, apperr.StoreUnavailable) {
		t.Errorf("ListOverrides() error = %v", err)
	}
	if _, err := svc.UpsertOverride(ctx, "a@b.com", UpsertRequest{ItemID: "thor"}); apperr.StatusOf(err) != 500 {
		t.Errorf("UpsertOverride() status = %d, want 500", apperr.StatusOf(err))
	}
	if _, err := svc.PurgeDeadImages(ctx, "a@b.com"); err == nil {
		t.Error("PurgeDeadImages() error = nil, want failure")
	}
}
