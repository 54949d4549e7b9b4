// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/mcutracker/internal/achievements"
	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/events"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/store"
)

type staticTitles []models.Title

func (s staticTitles) Titles(context.Context) []models.Title { return s }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ProgressUpdated
	err    error
}

func (p *recordingPublisher) PublishProgressUpdated(_ context.Context, e events.ProgressUpdated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fixture struct {
	svc    *Service
	store  *store.BadgerStore
	tokens *auth.JWTManager
	pub    *recordingPublisher
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	st, err := store.OpenBadger(config.StoreConfig{BadgerInMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:      strings.Repeat("s", 32),
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	titles := catalog.MustDefault().Titles()
	pub := &recordingPublisher{}
	opts = append([]Option{WithPublisher(pub)}, opts...)
	svc := NewService(st, staticTitles(titles), achievements.NewDefaultEngine(titles), tokens,
		Config{BcryptCost: bcrypt.MinCost}, opts...)

	return &fixture{svc: svc, store: st, tokens: tokens, pub: pub}
}

func (f *fixture) register(t *testing.T, email string) PublicUser {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterRequest{
		Name:     "Tony Stark",
		Email:    email,
		Password: "iamironman",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Register(%s) error = %v", email, err)
	}
	return u
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.register(t, "  Tony@Stark.COM ")
	if u.ID == "" || u.Email != "tony@stark.com" || u.Name != "Tony Stark" {
		t.Fatalf("Register() = %+v", u)
	}

	stored, err := f.store.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "iamironman" {
		t.Error("password was not hashed")
	}
	if stored.Preferences != models.DefaultPreferences() {
		t.Errorf("preferences = %+v, want defaults", stored.Preferences)
	}

	_, err = f.svc.Register(ctx, RegisterRequest{Name: "Other", Email: "TONY@stark.com", Password: "secret1"}, "")
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("duplicate Register() error = %v, want Conflict", err)
	}
	if apperr.StatusOf(err) != 400 || apperr.MessageOf(err) != msgDuplicateEmail {
		t.Errorf("duplicate status/message = %d %q", apperr.StatusOf(err), apperr.MessageOf(err))
	}
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"short name", RegisterRequest{Name: "T", Email: "a@b.com", Password: "secret1"}},
		{"blank name", RegisterRequest{Name: "   ", Email: "a@b.com", Password: "secret1"}},
		{"bad email", RegisterRequest{Name: "Tony", Email: "not-an-email", Password: "secret1"}},
		{"short password", RegisterRequest{Name: "Tony", Email: "a@b.com", Password: "12345"}},
		{"long password", RegisterRequest{Name: "Tony", Email: "a@b.com", Password: strings.Repeat("x", 101)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.req, "")
			if !apperr.Is(err, apperr.Validation) {
				t.Errorf("Register() error = %v, want Validation", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "tony@stark.com")

	if _, err := f.svc.ReplaceProgress(ctx, u.ID, ProgressRequest{WatchedItems: []string{"thor", "iron-man"}}); err != nil {
		t.Fatalf("ReplaceProgress() error = %v", err)
	}

	res, err := f.svc.Login(ctx, LoginRequest{Email: "TONY@stark.com", Password: "iamironman"}, "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := f.tokens.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != u.ID || claims.Email != "tony@stark.com" {
		t.Errorf("claims = %+v", claims)
	}
	if got := strings.Join(res.User.WatchedItems, ","); got != "iron-man,thor" {
		t.Errorf("watchedItems = %s, want server state", got)
	}
	if res.User.IsAdmin {
		t.Error("new user is admin")
	}

	for name, req := range map[string]LoginRequest{
		"wrong password": {Email: "tony@stark.com", Password: "wrong-password"},
		"unknown email":  {Email: "nobody@stark.com", Password: "iamironman"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, req, "")
			if !apperr.Is(err, apperr.Authentication) {
				t.Fatalf("Login() error = %v, want Authentication", err)
			}
			if apperr.MessageOf(err) != msgBadCredentials {
				t.Errorf("message = %q", apperr.MessageOf(err))
			}
		})
	}
}

func TestLogin_Guard(t *testing.T) {
	f := newFixture(t, WithLoginGuard(auth.NewLoginGuard(2, time.Hour)))
	ctx := context.Background()
	f.register(t, "tony@stark.com")

	bad := LoginRequest{Email: "tony@stark.com", Password: "wrong-password"}
	for i := 0; i < 2; i++ {
		if _, err := f.svc.Login(ctx, bad, ""); !apperr.Is(err, apperr.Authentication) {
			t.Fatalf("attempt %d error = %v, want Authentication", i+1, err)
		}
	}

	_, err := f.svc.Login(ctx, LoginRequest{Email: "tony@stark.com", Password: "iamironman"}, "")
	if !apperr.Is(err, apperr.RateLimited) {
		t.Fatalf("throttled Login() error = %v, want RateLimited", err)
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.RetryAfter <= 0 {
		t.Errorf("retry after missing: %v", err)
	}
}

func TestReplaceProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "tony@stark.com")

	res, err := f.svc.ReplaceProgress(ctx, u.ID, ProgressRequest{
		WatchedItems: []string{"thor", "iron-man", "thor"},
	})
	if err != nil {
		t.Fatalf("ReplaceProgress() error = %v", err)
	}
	if got := strings.Join(res.WatchedItems, ","); got != "iron-man,thor" {
		t.Errorf("watchedItems = %s", got)
	}
	if !contains(res.NewlyUnlocked, "first-watch") {
		t.Errorf("newlyUnlocked = %v, want first-watch", res.NewlyUnlocked)
	}

	again, err := f.svc.ReplaceProgress(ctx, u.ID, ProgressRequest{WatchedItems: []string{"iron-man", "thor"}})
	if err != nil {
		t.Fatalf("ReplaceProgress() error = %v", err)
	}
	if len(again.NewlyUnlocked) != 0 {
		t.Errorf("second save unlocked %v", again.NewlyUnlocked)
	}

	got, err := f.svc.Progress(ctx, u.ID)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if strings.Join(got, ",") != "iron-man,thor" {
		t.Errorf("Progress() = %v", got)
	}

	if len(f.pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(f.pub.events))
	}
	first := f.pub.events[0]
	if first.UserID != u.ID || first.Kind != events.KindReplace || first.WatchedCount != 2 || first.OccurredAt.IsZero() {
		t.Errorf("event = %+v", first)
	}
}

func TestReplaceProgress_Limits(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "tony@stark.com")

	ids := make([]string, MaxWatchedItems+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("title-%d", i)
	}
	_, err := f.svc.ReplaceProgress(context.Background(), u.ID, ProgressRequest{WatchedItems: ids})
	if !apperr.Is(err, apperr.Validation) {
		t.Errorf("oversized ReplaceProgress() error = %v, want Validation", err)
	}

	_, err = f.svc.ReplaceProgress(context.Background(), u.ID, ProgressRequest{WatchedItems: ids[:MaxWatchedItems]})
	if err != nil {
		t.Errorf("ReplaceProgress() at the limit error = %v", err)
	}

	_, err = f.svc.ReplaceProgress(context.Background(), u.ID, ProgressRequest{})
	if !apperr.Is(err, apperr.Validation) || apperr.MessageOf(err) != "Lista de itens é obrigatória" {
		t.Errorf("missing list ReplaceProgress() error = %v, want Validation", err)
	}
	stored, err := f.svc.Progress(context.Background(), u.ID)
	if err != nil || len(stored) != MaxWatchedItems {
		t.Errorf("Progress() after rejected save = %d ids, %v", len(stored), err)
	}

	res, err := f.svc.ReplaceProgress(context.Background(), u.ID, ProgressRequest{WatchedItems: []string{}})
	if err != nil || len(res.WatchedItems) != 0 {
		t.Errorf("empty list ReplaceProgress() = %v, %v; want cleared set", res.WatchedItems, err)
	}
}

func TestReplaceProgress_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("bus closed")
	u := f.register(t, "tony@stark.com")

	if _, err := f.svc.ReplaceProgress(context.Background(), u.ID, ProgressRequest{WatchedItems: []string{"thor"}}); err != nil {
		t.Fatalf("ReplaceProgress() error = %v", err)
	}
}

func TestToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "tony@stark.com")

	on, err := f.svc.Toggle(ctx, u.ID, ToggleRequest{ItemID: " iron-man "})
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !on.Watched || strings.Join(on.WatchedItems, ",") != "iron-man" {
		t.Errorf("first toggle = %+v", on)
	}
	if !contains(on.NewlyUnlocked, "first-watch") {
		t.Errorf("newlyUnlocked = %v", on.NewlyUnlocked)
	}

	off, err := f.svc.Toggle(ctx, u.ID, ToggleRequest{ItemID: "iron-man"})
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if off.Watched || len(off.WatchedItems) != 0 || len(off.NewlyUnlocked) != 0 {
		t.Errorf("second toggle = %+v", off)
	}

	if _, err := f.svc.Toggle(ctx, u.ID, ToggleRequest{ItemID: "  "}); !apperr.Is(err, apperr.Validation) {
		t.Errorf("blank Toggle() error = %v, want Validation", err)
	}
	if f.pub.events[0].ItemID != "iron-man" || f.pub.events[0].Kind != events.KindToggle {
		t.Errorf("event = %+v", f.pub.events[0])
	}
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "tony@stark.com")

	prefs, err := f.svc.Preferences(ctx, u.ID)
	if err != nil {
		t.Fatalf("Preferences() error = %v", err)
	}
	if prefs != models.DefaultPreferences() {
		t.Errorf("Preferences() = %+v", prefs)
	}

	_, err = f.svc.PatchPreferences(ctx, u.ID, models.PreferencesPatch{})
	if !apperr.Is(err, apperr.Validation) || apperr.MessageOf(err) != msgNoPreferenceFields {
		t.Errorf("empty patch error = %v", err)
	}

	hide := true
	version := "2.1.0"
	got, err := f.svc.PatchPreferences(ctx, u.ID, models.PreferencesPatch{
		HideWhatsNew:    &hide,
		LastSeenVersion: &version,
	})
	if err != nil {
		t.Fatalf("PatchPreferences() error = %v", err)
	}
	want := models.Preferences{HideWhatsNew: true, LastSeenVersion: "2.1.0"}
	if got != want {
		t.Errorf("PatchPreferences() = %+v, want %+v", got, want)
	}

	reread, err := f.svc.Preferences(ctx, u.ID)
	if err != nil || reread != want {
		t.Errorf("Preferences() = %+v, %v", reread, err)
	}
}

func TestDerivedViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "tony@stark.com")

	if _, err := f.svc.ReplaceProgress(ctx, u.ID, ProgressRequest{
		WatchedItems: []string{"iron-man", "incredible-hulk", "not-in-catalog"},
	}); err != nil {
		t.Fatalf("ReplaceProgress() error = %v", err)
	}

	stats, err := f.svc.Stats(ctx, u.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	total := catalog.MustDefault().Len()
	if stats.Watched != 2 || stats.Total != total {
		t.Errorf("stats watched/total = %d/%d, want 2/%d", stats.Watched, stats.Total, total)
	}

	res, err := f.svc.Achievements(ctx, u.ID)
	if err != nil {
		t.Fatalf("Achievements() error = %v", err)
	}
	if len(res.Achievements) != len(achievements.Definitions()) || res.Summary.Unlocked != 1 {
		t.Errorf("achievements = %d, summary = %+v", len(res.Achievements), res.Summary)
	}

	share, err := f.svc.Share(ctx, u.ID)
	if err != nil {
		t.Fatalf("Share() error = %v", err)
	}
	prefix := fmt.Sprintf("Já assisti 2 de %d títulos do MCU", total)
	if !strings.HasPrefix(share.Text, prefix) || share.UnlockedAchievements != 1 {
		t.Errorf("share = %+v", share)
	}
}

func TestUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checks := map[string]func() error{
		"Progress": func() error { _, err := f.svc.Progress(ctx, "ghost"); return err },
		"Replace": func() error {
			_, err := f.svc.ReplaceProgress(ctx, "ghost", ProgressRequest{WatchedItems: []string{"thor"}})
			return err
		},
		"Toggle": func() error {
			_, err := f.svc.Toggle(ctx, "ghost", ToggleRequest{ItemID: "thor"})
			return err
		},
		"Preferences":  func() error { _, err := f.svc.Preferences(ctx, "ghost"); return err },
		"Stats":        func() error { _, err := f.svc.Stats(ctx, "ghost"); return err },
		"Achievements": func() error { _, err := f.svc.Achievements(ctx, "ghost"); return err },
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			err := check()
			if !apperr.Is(err, apperr.NotFound) || apperr.MessageOf(err) != msgUserNotFound {
				t.Errorf("error = %v, want NotFound %q", err, msgUserNotFound)
			}
		})
	}
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
