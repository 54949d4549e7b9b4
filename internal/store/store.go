// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists accounts.
type UserStore interface {
	// CreateUser inserts u. Email must already be normalized.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// SetWatchedItems replaces the watched set of user id.
	SetWatchedItems(ctx context.Context, id string, items []string) error

	// ToggleWatched flips itemID in the watched set of user id in one atomic
	// step and returns the resulting set.
	ToggleWatched(ctx context.Context, id, itemID string) (watched bool, items []string, err error)

	// PatchPreferences applies the set fields of patch to the preferences of
	// user id in one atomic step and returns the stored result.
	PatchPreferences(ctx context.Context, id string, patch models.PreferencesPatch) (models.Preferences, error)

	// SetAdmin grants or revokes the admin flag by email.
	SetAdmin(ctx context.Context, email string, isAdmin bool) error
}

// OverrideStore persists admin overrides.
type OverrideStore interface {
	// ListOverrides returns every override sorted by item id.
	ListOverrides(ctx context.Context) ([]models.Override, error)
	GetOverride(ctx context.Context, itemID string) (*models.Override, error)

	// UpsertOverride replaces the field set stored for o.ItemID. CreatedAt is
	// kept from the first write; UpdatedAt and UpdatedBy come from o.
	UpsertOverride(ctx context.Context, o models.Override) (models.Override, error)
}

// Store is a complete persistence backend.
type Store interface {
	UserStore
	OverrideStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Backend names the implementation for logs and metrics.
	Backend() string
	Close() error
}

// Open creates the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "badger":
		return OpenBadger(cfg)
	case "mongo":
		return OpenMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// unavailable classifies a backend failure.
func unavailable(op string, err error) error {
	return apperr.Wrap(err, apperr.StoreUnavailable, op)
}

// observe records latency and unexpected errors of one store call.
func observe(backend, op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateEmail) {
		err = nil
	}
	metrics.RecordStoreOperation(backend, op, time.Since(start), err)
}

// toggle returns items with itemID flipped.
func toggle(items []string, itemID string) (bool, []string) {
	out := make([]string, 0, len(items)+1)
	found := false
	for _, id := range items {
		if id == itemID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, itemID)
	}
	return !found, out
}
