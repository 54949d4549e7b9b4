// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/mcutracker/internal/achievements"
	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/events"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/metrics"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/store"
	"github.com/tomtom215/mcutracker/internal/validation"
	"github.com/tomtom215/mcutracker/internal/watchstate"
)

// Client-facing messages.
const (
	msgUserNotFound       = "Usuário não encontrado"
	msgBadCredentials     = "Email ou senha incorretos"
	msgDuplicateEmail     = "Este email já está cadastrado"
	msgNoPreferenceFields = "Nenhum campo válido para atualizar"
	msgTooManyLogins      = "Muitas tentativas de login. Tente novamente mais tarde."
)

// TitleSource yields the effective catalog. *merge.Engine satisfies it.
type TitleSource interface {
	Titles(ctx context.Context) []models.Title
}

// Config tunes the Service.
type Config struct {
	BcryptCost int
	Stats      watchstate.StatsConfig
}

// Service implements the account operations.
type Service struct {
	users        store.UserStore
	titles       TitleSource
	achievements *achievements.Engine
	tokens       *auth.JWTManager
	guard        *auth.LoginGuard
	publisher    events.Publisher
	security     *logging.SecurityLogger
	cfg          Config
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLoginGuard throttles failed logins per email.
func WithLoginGuard(g *auth.LoginGuard) Option {
	return func(s *Service) { s.guard = g }
}

// WithPublisher publishes progress events after every write.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an account service.
func NewService(users store.UserStore, titles TitleSource, engine *achievements.Engine, tokens *auth.JWTManager, cfg Config, opts ...Option) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = auth.DefaultBcryptCost
	}
	if cfg.Stats.MinutesPerEpisode <= 0 {
		cfg.Stats.MinutesPerEpisode = watchstate.DefaultMinutesPerEpisode
	}
	if cfg.Stats.PreviewCount <= 0 {
		cfg.Stats.PreviewCount = watchstate.DefaultPreviewCount
	}

	s := &Service{
		users:        users,
		titles:       titles,
		achievements: engine,
		tokens:       tokens,
		security:     logging.NewSecurityLogger(),
		cfg:          cfg,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account. The email is stored normalized.
func (s *Service) Register(ctx context.Context, req RegisterRequest, ip string) (PublicUser, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = models.NormalizeEmail(req.Email)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return PublicUser{}, verr
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		metrics.RecordAuthAttempt("register", false)
		return PublicUser{}, apperr.New(apperr.Conflict, msgDuplicateEmail)
	} else if !errors.Is(err, store.ErrNotFound) {
		return PublicUser{}, err
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return PublicUser{}, apperr.Wrap(err, apperr.Internal, "hash password")
	}

	now := s.now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		WatchedItems: []string{},
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			metrics.RecordAuthAttempt("register", false)
			return PublicUser{}, apperr.Wrap(err, apperr.Conflict, msgDuplicateEmail)
		}
		return PublicUser{}, err
	}

	metrics.RecordAuthAttempt("register", true)
	s.security.LogRegister(u.ID, u.Email, ip)
	return publicUser(u), nil
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest, ip string) (LoginResult, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return LoginResult{}, verr
	}

	if ok, retry := s.guard.Allow(req.Email); !ok {
		s.security.LogLoginFailure(req.Email, ip, "throttled")
		metrics.RecordAuthAttempt("login", false)
		limited := apperr.Limited(retry)
		limited.Message = msgTooManyLogins
		return LoginResult{}, limited
	}

	u, err := s.users.GetUserByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Keep timing close to the wrong-password path.
		_ = auth.CheckPassword("", req.Password)
		return LoginResult{}, s.loginFailed(req.Email, ip, "unknown email")
	case err != nil:
		return LoginResult{}, err
	}

	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return LoginResult{}, s.loginFailed(req.Email, ip, "wrong password")
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		return LoginResult{}, apperr.Wrap(err, apperr.Internal, "generate token")
	}

	s.guard.Succeed(req.Email)
	metrics.RecordAuthAttempt("login", true)
	s.security.LogLoginSuccess(u.ID, u.Email, ip)

	return LoginResult{
		Token: token,
		User: SessionUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			WatchedItems: watchstate.FromSlice(u.WatchedItems).IDs(),
			IsAdmin:      u.IsAdmin,
		},
	}, nil
}

func (s *Service) loginFailed(email, ip, reason string) error {
	s.guard.Fail(email)
	metrics.RecordAuthAttempt("login", false)
	s.security.LogLoginFailure(email, ip, reason)
	return apperr.New(apperr.Authentication, msgBadCredentials)
}

// User returns the account of id.
func (s *Service) User(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Wrap(err, apperr.NotFound, msgUserNotFound)
	}
	return u, err
}

// Progress returns the watched ids of user id, sorted.
func (s *Service) Progress(ctx context.Context, id string) ([]string, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}
	return watchstate.FromSlice(u.WatchedItems).IDs(), nil
}

// ReplaceProgress overwrites the watched set of user id with the
// deduplicated request list.
func (s *Service) ReplaceProgress(ctx context.Context, id string, req ProgressRequest) (ProgressResult, error) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		return ProgressResult{}, verr
	}

	u, err := s.User(ctx, id)
	if err != nil {
		return ProgressResult{}, err
	}

	before := watchstate.FromSlice(u.WatchedItems)
	after := watchstate.FromSlice(req.WatchedItems)
	if err := s.users.SetWatchedItems(ctx, id, after.IDs()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ProgressResult{}, apperr.Wrap(err, apperr.NotFound, msgUserNotFound)
		}
		return ProgressResult{}, err
	}

	newly := s.newlyUnlocked(before, after)
	s.publish(ctx, events.ProgressUpdated{
		UserID:        id,
		Kind:          events.KindReplace,
		WatchedCount:  after.Len(),
		NewlyUnlocked: newly,
	})

	return ProgressResult{WatchedItems: after.IDs(), NewlyUnlocked: newly}, nil
}

// Toggle flips one id in the watched set of user id.
func (s *Service) Toggle(ctx context.Context, id string, req ToggleRequest) (ToggleResult, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return ToggleResult{}, verr
	}

	watched, items, err := s.users.ToggleWatched(ctx, id, req.ItemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ToggleResult{}, apperr.Wrap(err, apperr.NotFound, msgUserNotFound)
		}
		return ToggleResult{}, err
	}

	after := watchstate.FromSlice(items)
	before := after.Clone()
	before.Toggle(req.ItemID)

	newly := s.newlyUnlocked(before, after)
	s.publish(ctx, events.ProgressUpdated{
		UserID:        id,
		Kind:          events.KindToggle,
		ItemID:        req.ItemID,
		WatchedCount:  after.Len(),
		NewlyUnlocked: newly,
	})

	return ToggleResult{WatchedItems: after.IDs(), Watched: watched, NewlyUnlocked: newly}, nil
}

// Preferences returns the preferences of user id with defaults filled in.
func (s *Service) Preferences(ctx context.Context, id string) (models.Preferences, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return models.Preferences{}, err
	}
	return u.Preferences.WithDefaults(), nil
}

// PatchPreferences applies patch and returns the stored result.
func (s *Service) PatchPreferences(ctx context.Context, id string, patch models.PreferencesPatch) (models.Preferences, error) {
	if patch.Empty() {
		return models.Preferences{}, apperr.New(apperr.Validation, msgNoPreferenceFields)
	}

	prefs, err := s.users.PatchPreferences(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Preferences{}, apperr.Wrap(err, apperr.NotFound, msgUserNotFound)
		}
		return models.Preferences{}, err
	}
	return prefs, nil
}

// Stats computes the progress summary of user id against the effective catalog.
func (s *Service) Stats(ctx context.Context, id string) (watchstate.Stats, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return watchstate.Stats{}, err
	}
	return watchstate.ComputeStats(watchstate.FromSlice(u.WatchedItems), s.titles.Titles(ctx), s.cfg.Stats), nil
}

// Achievements evaluates every achievement for user id.
func (s *Service) Achievements(ctx context.Context, id string) (AchievementsResult, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return AchievementsResult{}, err
	}
	statuses := s.achievements.Evaluate(watchstate.FromSlice(u.WatchedItems))
	return AchievementsResult{
		Achievements: statuses,
		Summary:      achievements.Summarize(statuses),
	}, nil
}

// Share builds the share text of user id.
func (s *Service) Share(ctx context.Context, id string) (achievements.Share, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return achievements.Share{}, err
	}
	watched := watchstate.FromSlice(u.WatchedItems)
	stats := watchstate.ComputeStats(watched, s.titles.Titles(ctx), s.cfg.Stats)
	unlocked := len(achievements.Unlocked(s.achievements.Evaluate(watched)))
	return achievements.ShareText("", stats.Watched, stats.Total, unlocked), nil
}

func (s *Service) newlyUnlocked(before, after watchstate.WatchedSet) []string {
	if s.achievements == nil {
		return []string{}
	}
	return achievements.NewlyUnlocked(s.achievements.Evaluate(before), s.achievements.Evaluate(after))
}

// publish records the update and hands it to the publisher. Publish
// failures are logged; the write has already succeeded.
func (s *Service) publish(ctx context.Context, e events.ProgressUpdated) {
	metrics.RecordProgressUpdate(e.Kind)
	if s.publisher == nil {
		return
	}
	e.OccurredAt = s.now().UTC()
	if err := s.publisher.PublishProgressUpdated(ctx, e); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("user_id", e.UserID).
			Str("kind", e.Kind).
			Msg("Failed to publish progress event")
	}
}
