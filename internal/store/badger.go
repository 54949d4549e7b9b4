// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/models"
)

const backendBadger = "badger"

// Key prefixes for BadgerDB storage
const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
	overrideKeyPrefix  = "override:"
)

// gcDiscardRatio is the value-log GC threshold.
const gcDiscardRatio = 0.5

// userRecord is the stored form of a user. models.User hides the password
// hash from JSON, so it is carried separately here.
type userRecord struct {
	models.User
	Password string `json:"password"`
}

// BadgerStore implements Store on an embedded BadgerDB.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool

	writeMu sync.Mutex

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) the database described by cfg.
func OpenBadger(cfg config.StoreConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.BadgerPath)
	if cfg.BadgerInMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = newBadgerLogger()

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	logging.Info().
		Str("path", cfg.BadgerPath).
		Bool("in_memory", cfg.BadgerInMemory).
		Msg("Badger store opened")

	return &BadgerStore{db: db, inMemory: cfg.BadgerInMemory}, nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, inMemory: db.Opts().InMemory}
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return backendBadger }

// Ping implements Store.
func (s *BadgerStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed || s.db.IsClosed() {
		return unavailable("ping", errors.New("badger is closed"))
	}
	return nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// RunGC reclaims value-log space until Badger reports nothing to rewrite.
func (s *BadgerStore) RunGC() error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// CreateUser implements UserStore.
func (s *BadgerStore) CreateUser(_ context.Context, u *models.User) (err error) {
	defer func(start time.Time) { observe(backendBadger, "create_user", start, err) }(time.Now())

	rec := userRecord{User: *u, Password: u.PasswordHash}
	data, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.update(func(txn *badger.Txn) error {
		emailKey := []byte(userEmailKeyPrefix + u.Email)
		if _, err := txn.Get(emailKey); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set([]byte(userKeyPrefix+u.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(emailKey, []byte(u.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return nil
	})
	return s.classify("create user", err)
}

// GetUser implements UserStore.
func (s *BadgerStore) GetUser(_ context.Context, id string) (u *models.User, err error) {
	defer func(start time.Time) { observe(backendBadger, "get_user", start, err) }(time.Now())

	err = s.db.View(func(txn *badger.Txn) error {
		u, err = getUser(txn, id)
		return err
	})
	return u, s.classify("get user", err)
}

// GetUserByEmail implements UserStore.
func (s *BadgerStore) GetUserByEmail(_ context.Context, email string) (u *models.User, err error) {
	defer func(start time.Time) { observe(backendBadger, "get_user_by_email", start, err) }(time.Now())

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailKeyPrefix + email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		u, err = getUser(txn, string(id))
		return err
	})
	return u, s.classify("get user by email", err)
}

// SetWatchedItems implements UserStore.
func (s *BadgerStore) SetWatchedItems(_ context.Context, id string, items []string) (err error) {
	defer func(start time.Time) { observe(backendBadger, "set_watched", start, err) }(time.Now())

	err = s.mutateUser(id, func(u *models.User) {
		u.WatchedItems = append([]string{}, items...)
	})
	return s.classify("set watched items", err)
}

// ToggleWatched implements UserStore.
func (s *BadgerStore) ToggleWatched(_ context.Context, id, itemID string) (watched bool, items []string, err error) {
	defer func(start time.Time) { observe(backendBadger, "toggle_watched", start, err) }(time.Now())

	err = s.mutateUser(id, func(u *models.User) {
		watched, u.WatchedItems = toggle(u.WatchedItems, itemID)
		items = u.WatchedItems
	})
	return watched, items, s.classify("toggle watched", err)
}

// PatchPreferences implements UserStore.
func (s *BadgerStore) PatchPreferences(_ context.Context, id string, patch models.PreferencesPatch) (prefs models.Preferences, err error) {
	defer func(start time.Time) { observe(backendBadger, "patch_preferences", start, err) }(time.Now())

	err = s.mutateUser(id, func(u *models.User) {
		u.Preferences = patch.Apply(u.Preferences.WithDefaults())
		prefs = u.Preferences
	})
	if err != nil {
		return models.Preferences{}, s.classify("patch preferences", err)
	}
	return prefs, nil
}

// SetAdmin implements UserStore.
func (s *BadgerStore) SetAdmin(ctx context.Context, email string, isAdmin bool) (err error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	err = s.mutateUser(u.ID, func(u *models.User) {
		u.IsAdmin = isAdmin
	})
	return s.classify("set admin", err)
}

// ListOverrides implements OverrideStore.
func (s *BadgerStore) ListOverrides(_ context.Context) (out []models.Override, err error) {
	defer func(start time.Time) { observe(backendBadger, "list_overrides", start, err) }(time.Now())

	out = []models.Override{}
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(overrideKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var o models.Override
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &o)
			}); err != nil {
				return fmt.Errorf("unmarshal override: %w", err)
			}
			out = append(out, o)
		}
		return nil
	})
	if err != nil {
		return nil, s.classify("list overrides", err)
	}

	// Keys are already ordered; sort anyway so the contract does not depend on key layout.
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

// GetOverride implements OverrideStore.
func (s *BadgerStore) GetOverride(_ context.Context, itemID string) (o *models.Override, err error) {
	defer func(start time.Time) { observe(backendBadger, "get_override", start, err) }(time.Now())

	err = s.db.View(func(txn *badger.Txn) error {
		o, err = getOverride(txn, itemID)
		return err
	})
	return o, s.classify("get override", err)
}

// UpsertOverride implements OverrideStore.
func (s *BadgerStore) UpsertOverride(_ context.Context, o models.Override) (out models.Override, err error) {
	defer func(start time.Time) { observe(backendBadger, "upsert_override", start, err) }(time.Now())

	err = s.update(func(txn *badger.Txn) error {
		existing, err := getOverride(txn, o.ItemID)
		switch {
		case err == nil:
			o.CreatedAt = existing.CreatedAt
		case errors.Is(err, ErrNotFound):
			if o.CreatedAt.IsZero() {
				o.CreatedAt = o.UpdatedAt
			}
		default:
			return err
		}

		data, err := json.Marshal(&o)
		if err != nil {
			return fmt.Errorf("marshal override: %w", err)
		}
		return txn.Set([]byte(overrideKeyPrefix+o.ItemID), data)
	})
	if err != nil {
		return models.Override{}, s.classify("upsert override", err)
	}
	return o, nil
}

// update runs fn in a read-write transaction. Writers are serialized so
// read-modify-write sequences never hit badger.ErrConflict.
func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.db.Update(fn)
}

func (s *BadgerStore) mutateUser(id string, fn func(u *models.User)) error {
	return s.update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + id)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var rec userRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}

		fn(&rec.User)
		rec.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set(key, data)
	})
}

// classify passes sentinel errors through and marks the rest unavailable.
func (s *BadgerStore) classify(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateEmail) {
		return err
	}
	return unavailable(op, err)
}

func getUser(txn *badger.Txn, id string) (*models.User, error) {
	item, err := txn.Get([]byte(userKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec userRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	u := rec.User
	u.PasswordHash = rec.Password
	return &u, nil
}

func getOverride(txn *badger.Txn, itemID string) (*models.Override, error) {
	item, err := txn.Get([]byte(overrideKeyPrefix + itemID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var o models.Override
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &o)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal override: %w", err)
	}
	return &o, nil
}
