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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/models"
)

const backendMongo = "mongo"

// Collection names
const (
	usersCollection     = "users"
	overridesCollection = "mcuitems"
)

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	client    *mongo.Client
	users     *mongo.Collection
	overrides *mongo.Collection
	timeout   time.Duration
}

// OpenMongo connects, pings, and ensures indexes.
func OpenMongo(ctx context.Context, cfg config.StoreConfig) (*MongoStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	s := NewMongoStore(client, cfg.MongoDatabase, timeout)
	if err := s.Ping(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logging.Info().
		Str("database", cfg.MongoDatabase).
		Msg("Mongo store connected")

	return s, nil
}

// NewMongoStore wraps a connected client.
func NewMongoStore(client *mongo.Client, database string, timeout time.Duration) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:    client,
		users:     db.Collection(usersCollection),
		overrides: db.Collection(overridesCollection),
		timeout:   timeout,
	}
}

// EnsureIndexes creates the unique indexes on users.email and mcuitems.itemId.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return unavailable("create users index", err)
	}
	if _, err := s.overrides.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "itemId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return unavailable("create overrides index", err)
	}
	return nil
}

// Backend implements Store.
func (s *MongoStore) Backend() string { return backendMongo }

// Ping implements Store.
func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// CreateUser implements UserStore.
func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) (err error) {
	defer func(start time.Time) { observe(backendMongo, "create_user", start, err) }(time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err = s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return unavailable("create user", err)
	}
	return nil
}

// GetUser implements UserStore.
func (s *MongoStore) GetUser(ctx context.Context, id string) (u *models.User, err error) {
	defer func(start time.Time) { observe(backendMongo, "get_user", start, err) }(time.Now())
	return s.findUser(ctx, bson.M{"_id": id})
}

// GetUserByEmail implements UserStore.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	defer func(start time.Time) { observe(backendMongo, "get_user_by_email", start, err) }(time.Now())
	return s.findUser(ctx, bson.M{"email": email})
}

// SetWatchedItems implements UserStore.
func (s *MongoStore) SetWatchedItems(ctx context.Context, id string, items []string) (err error) {
	defer func(start time.Time) { observe(backendMongo, "set_watched", start, err) }(time.Now())
	if items == nil {
		items = []string{}
	}
	return s.updateUser(ctx, bson.M{"_id": id}, bson.M{"watchedItems": items})
}

// ToggleWatched implements UserStore. The flip runs as an aggregation
// pipeline update so concurrent toggles on one account cannot interleave.
func (s *MongoStore) ToggleWatched(ctx context.Context, id, itemID string) (watched bool, items []string, err error) {
	defer func(start time.Time) { observe(backendMongo, "toggle_watched", start, err) }(time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	current := bson.M{"$ifNull": bson.A{"$watchedItems", bson.A{}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"watchedItems": bson.M{"$cond": bson.M{
				"if":   bson.M{"$in": bson.A{itemID, current}},
				"then": bson.M{"$setDifference": bson.A{current, bson.A{itemID}}},
				"else": bson.M{"$concatArrays": bson.A{current, bson.A{itemID}}},
			}},
			"updatedAt": time.Now().UTC(),
		}}},
	}

	var u models.User
	err = s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil, ErrNotFound
	}
	if err != nil {
		return false, nil, unavailable("toggle watched", err)
	}

	for _, w := range u.WatchedItems {
		if w == itemID {
			watched = true
			break
		}
	}
	return watched, u.WatchedItems, nil
}

// PatchPreferences implements UserStore. Each field is set by its dotted
// path so concurrent patches to different fields both survive.
func (s *MongoStore) PatchPreferences(ctx context.Context, id string, patch models.PreferencesPatch) (prefs models.Preferences, err error) {
	defer func(start time.Time) { observe(backendMongo, "patch_preferences", start, err) }(time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	set := preferencesSet(patch)
	set["updatedAt"] = time.Now().UTC()

	var u models.User
	err = s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Preferences{}, ErrNotFound
	}
	if err != nil {
		return models.Preferences{}, unavailable("patch preferences", err)
	}
	return u.Preferences.WithDefaults(), nil
}

func preferencesSet(p models.PreferencesPatch) bson.M {
	set := bson.M{}
	if p.HideWhatsNew != nil {
		set["preferences.hideWhatsNew"] = *p.HideWhatsNew
	}
	if p.HideOnboarding != nil {
		set["preferences.hideOnboarding"] = *p.HideOnboarding
	}
	if p.HideSpoilerWarning != nil {
		set["preferences.hideSpoilerWarning"] = *p.HideSpoilerWarning
	}
	if p.LastSeenVersion != nil {
		set["preferences.lastSeenVersion"] = *p.LastSeenVersion
	}
	return set
}

// SetAdmin implements UserStore.
func (s *MongoStore) SetAdmin(ctx context.Context, email string, isAdmin bool) (err error) {
	defer func(start time.Time) { observe(backendMongo, "set_admin", start, err) }(time.Now())
	return s.updateUser(ctx, bson.M{"email": email}, bson.M{"isAdmin": isAdmin})
}

// ListOverrides implements OverrideStore.
func (s *MongoStore) ListOverrides(ctx context.Context) (out []models.Override, err error) {
	defer func(start time.Time) { observe(backendMongo, "list_overrides", start, err) }(time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.overrides.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "itemId", Value: 1}}))
	if err != nil {
		return nil, unavailable("list overrides", err)
	}
	defer cur.Close(ctx)

	out = []models.Override{}
	if err = cur.All(ctx, &out); err != nil {
		return nil, unavailable("decode overrides", err)
	}
	return out, nil
}

// GetOverride implements OverrideStore.
func (s *MongoStore) GetOverride(ctx context.Context, itemID string) (o *models.Override, err error) {
	defer func(start time.Time) { observe(backendMongo, "get_override", start, err) }(time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out models.Override
	err = s.overrides.FindOne(ctx, bson.M{"itemId": itemID}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get override", err)
	}
	return &out, nil
}

// UpsertOverride implements OverrideStore.
func (s *MongoStore) UpsertOverride(ctx context.Context, o models.Override) (out models.Override, err error) {
	defer func(start time.Time) { observe(backendMongo, "upsert_override", start, err) }(time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = o.UpdatedAt
	}

	update := bson.M{
		"$set": bson.M{
			"trailerUrl":          o.TrailerURL,
			"trailerUrlDublado":   o.TrailerURLDublado,
			"trailerUrlLegendado": o.TrailerURLLegendado,
			"customDescription":   o.CustomDescription,
			"customSynopsis":      o.CustomSynopsis,
			"customImageUrl":      o.CustomImageURL,
			"customBackdropUrl":   o.CustomBackdropURL,
			"updatedBy":           o.UpdatedBy,
			"updatedAt":           o.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": createdAt},
	}

	err = s.overrides.FindOneAndUpdate(ctx, bson.M{"itemId": o.ItemID}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Override{}, unavailable("upsert override", err)
	}
	return out, nil
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := s.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find user", err)
	}
	return &u, nil
}

func (s *MongoStore) updateUser(ctx context.Context, filter, set bson.M) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := s.users.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return unavailable("update user", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
