// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/models"
)

// runStoreSuite exercises the Store contract against any backend.
func runStoreSuite(t *testing.T, st Store) {
	t.Run("CreateAndGetUser", func(t *testing.T) { testCreateAndGetUser(t, st) })
	t.Run("DuplicateEmail", func(t *testing.T) { testDuplicateEmail(t, st) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, st) })
	t.Run("WatchedItems", func(t *testing.T) { testWatchedItems(t, st) })
	t.Run("ConcurrentToggles", func(t *testing.T) { testConcurrentToggles(t, st) })
	t.Run("Preferences", func(t *testing.T) { testPreferences(t, st) })
	t.Run("ConcurrentPreferencePatches", func(t *testing.T) { testConcurrentPreferencePatches(t, st) })
	t.Run("SetAdmin", func(t *testing.T) { testSetAdmin(t, st) })
	t.Run("Overrides", func(t *testing.T) { testOverrides(t, st) })
	t.Run("Ping", func(t *testing.T) {
		if err := st.Ping(context.Background()); err != nil {
			t.Fatalf("Ping() error = %v", err)
		}
	})
}

func newTestUser(id, email string) *models.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.User{
		ID:           id,
		Name:         "Test " + id,
		Email:        email,
		PasswordHash: "$2a$10$hash-" + id,
		WatchedItems: []string{},
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testCreateAndGetUser(t *testing.T, st Store) {
	ctx := context.Background()
	u := newTestUser("u-create", "create@example.com")
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	got, err := st.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Email != u.Email || got.Name != u.Name {
		t.Errorf("GetUser() = %+v, want %+v", got, u)
	}
	if got.PasswordHash != u.PasswordHash {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, u.PasswordHash)
	}
	if got.Preferences.LastSeenVersion != models.DefaultLastSeenVersion {
		t.Errorf("LastSeenVersion = %q", got.Preferences.LastSeenVersion)
	}

	byEmail, err := st.GetUserByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetUserByEmail().ID = %q, want %q", byEmail.ID, u.ID)
	}
}

func testDuplicateEmail(t *testing.T, st Store) {
	ctx := context.Background()
	if err := st.CreateUser(ctx, newTestUser("u-dup-1", "dup@example.com")); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	err := st.CreateUser(ctx, newTestUser("u-dup-2", "dup@example.com"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("CreateUser() duplicate error = %v, want ErrDuplicateEmail", err)
	}
	if _, err := st.GetUser(ctx, "u-dup-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second user was stored: err = %v", err)
	}
}

func testNotFound(t *testing.T, st Store) {
	ctx := context.Background()
	if _, err := st.GetUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v", err)
	}
	if _, err := st.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail(missing) error = %v", err)
	}
	if _, err := st.GetOverride(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetOverride(missing) error = %v", err)
	}
	if _, _, err := st.ToggleWatched(ctx, "missing", "iron-man"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleWatched(missing) error = %v", err)
	}
	if err := st.SetWatchedItems(ctx, "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetWatchedItems(missing) error = %v", err)
	}
	if apperr.Is(ErrNotFound, apperr.StoreUnavailable) {
		t.Error("ErrNotFound must not classify as store unavailable")
	}
}

func testWatchedItems(t *testing.T, st Store) {
	ctx := context.Background()
	u := newTestUser("u-watch", "watch@example.com")
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if err := st.SetWatchedItems(ctx, u.ID, []string{"iron-man", "thor"}); err != nil {
		t.Fatalf("SetWatchedItems() error = %v", err)
	}

	watched, items, err := st.ToggleWatched(ctx, u.ID, "hulk")
	if err != nil {
		t.Fatalf("ToggleWatched() error = %v", err)
	}
	if !watched || len(items) != 3 {
		t.Errorf("ToggleWatched(hulk) = %v, %v; want true with 3 items", watched, items)
	}

	watched, items, err = st.ToggleWatched(ctx, u.ID, "iron-man")
	if err != nil {
		t.Fatalf("ToggleWatched() error = %v", err)
	}
	if watched {
		t.Error("ToggleWatched(iron-man) should unwatch")
	}
	sort.Strings(items)
	if len(items) != 2 || items[0] != "hulk" || items[1] != "thor" {
		t.Errorf("items = %v, want [hulk thor]", items)
	}

	got, err := st.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.WatchedItems) != 2 {
		t.Errorf("persisted WatchedItems = %v", got.WatchedItems)
	}
}

func testConcurrentToggles(t *testing.T, st Store) {
	ctx := context.Background()
	u := newTestUser("u-concurrent", "concurrent@example.com")
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, _, err := st.ToggleWatched(ctx, u.ID, id); err != nil {
				t.Errorf("ToggleWatched(%s) error = %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	got, err := st.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.WatchedItems) != len(ids) {
		t.Errorf("WatchedItems = %v, want all %d toggles applied", got.WatchedItems, len(ids))
	}
}

func testPreferences(t *testing.T, st Store) {
	ctx := context.Background()
	u := newTestUser("u-prefs", "prefs@example.com")
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	hide := true
	version := "2.1.0"
	got, err := st.PatchPreferences(ctx, u.ID, models.PreferencesPatch{
		HideOnboarding:  &hide,
		LastSeenVersion: &version,
	})
	if err != nil {
		t.Fatalf("PatchPreferences() error = %v", err)
	}
	want := models.Preferences{HideOnboarding: true, LastSeenVersion: "2.1.0"}
	if got != want {
		t.Errorf("PatchPreferences() = %+v, want %+v", got, want)
	}

	stored, err := st.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if stored.Preferences != want {
		t.Errorf("Preferences = %+v, want %+v", stored.Preferences, want)
	}

	if _, err := st.PatchPreferences(ctx, "missing", models.PreferencesPatch{HideOnboarding: &hide}); !errors.Is(err, ErrNotFound) {
		t.Errorf("PatchPreferences(missing) error = %v, want ErrNotFound", err)
	}
}

func testConcurrentPreferencePatches(t *testing.T, st Store) {
	ctx := context.Background()
	u := newTestUser("u-prefs-race", "prefs-race@example.com")
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	yes := true
	patches := []models.PreferencesPatch{
		{HideWhatsNew: &yes},
		{HideOnboarding: &yes},
		{HideSpoilerWarning: &yes},
	}

	var wg sync.WaitGroup
	for _, p := range patches {
		wg.Add(1)
		go func(p models.PreferencesPatch) {
			defer wg.Done()
			if _, err := st.PatchPreferences(ctx, u.ID, p); err != nil {
				t.Errorf("PatchPreferences() error = %v", err)
			}
		}(p)
	}
	wg.Wait()

	got, err := st.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	p := got.Preferences
	if !p.HideWhatsNew || !p.HideOnboarding || !p.HideSpoilerWarning {
		t.Errorf("Preferences = %+v, want every patched field kept", p)
	}
	if p.LastSeenVersion != models.DefaultLastSeenVersion {
		t.Errorf("LastSeenVersion = %q, want %q", p.LastSeenVersion, models.DefaultLastSeenVersion)
	}
}

func testSetAdmin(t *testing.T, st Store) {
	ctx := context.Background()
	u := newTestUser("u-admin", "admin@example.com")
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := st.SetAdmin(ctx, u.Email, true); err != nil {
		t.Fatalf("SetAdmin() error = %v", err)
	}
	got, err := st.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if !got.IsAdmin {
		t.Error("IsAdmin = false after SetAdmin(true)")
	}
	if err := st.SetAdmin(ctx, "nobody@example.com", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetAdmin(unknown) error = %v", err)
	}
}

func testOverrides(t *testing.T, st Store) {
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"thor", "iron-man"} {
		_, err := st.UpsertOverride(ctx, models.Override{
			ItemID:     id,
			TrailerURL: "https://youtube.com/watch?v=" + id,
			UpdatedBy:  "admin@example.com",
			UpdatedAt:  first,
		})
		if err != nil {
			t.Fatalf("UpsertOverride(%s) error = %v", id, err)
		}
	}

	list, err := st.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("ListOverrides() error = %v", err)
	}
	if len(list) != 2 || list[0].ItemID != "iron-man" || list[1].ItemID != "thor" {
		t.Fatalf("ListOverrides() = %+v, want sorted [iron-man thor]", list)
	}

	second := first.Add(time.Hour)
	out, err := st.UpsertOverride(ctx, models.Override{
		ItemID:         "thor",
		CustomSynopsis: "new synopsis",
		UpdatedBy:      "other@example.com",
		UpdatedAt:      second,
	})
	if err != nil {
		t.Fatalf("UpsertOverride() error = %v", err)
	}
	if !out.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want preserved %v", out.CreatedAt, first)
	}
	if !out.UpdatedAt.Equal(second) || out.UpdatedBy != "other@example.com" {
		t.Errorf("UpdatedAt/UpdatedBy = %v/%q", out.UpdatedAt, out.UpdatedBy)
	}

	got, err := st.GetOverride(ctx, "thor")
	if err != nil {
		t.Fatalf("GetOverride() error = %v", err)
	}
	if got.TrailerURL != "" {
		t.Errorf("TrailerURL = %q, want replaced field set", got.TrailerURL)
	}
	if got.CustomSynopsis != "new synopsis" {
		t.Errorf("CustomSynopsis = %q", got.CustomSynopsis)
	}
}
