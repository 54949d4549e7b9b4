// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/tomtom215/mcutracker/docs" // registers the OpenAPI document
	"github.com/tomtom215/mcutracker/internal/account"
	"github.com/tomtom215/mcutracker/internal/achievements"
	"github.com/tomtom215/mcutracker/internal/admin"
	"github.com/tomtom215/mcutracker/internal/api"
	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/authz"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/events"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/merge"
	"github.com/tomtom215/mcutracker/internal/ratelimit"
	"github.com/tomtom215/mcutracker/internal/store"
	"github.com/tomtom215/mcutracker/internal/supervisor"
	"github.com/tomtom215/mcutracker/internal/supervisor/services"
	"github.com/tomtom215/mcutracker/internal/watchstate"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute

	// loginGuardIdle drops per-email buckets that have refilled completely.
	loginGuardIdle = 30 * time.Minute
)

// app is the assembled server. close releases the bus and the store.
type app struct {
	cfg     *config.Config
	store   store.Store
	bus     *events.Bus
	limiter *ratelimit.Limiter
	guard   *auth.LoginGuard
	handler http.Handler
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	tokens, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return nil, fmt.Errorf("jwt manager: %w", err)
	}
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}

	// Fallible setup must stay above this point; nothing below releases the store or bus.
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	logging.Info().
		Str("backend", st.Backend()).
		Int("titles", cat.Len()).
		Msg("Store and catalog ready")

	engine := merge.NewEngine(cat, st, cfg.Breaker, merge.WithCacheTTL(cfg.Catalog.OverrideCacheTTL))
	bus := events.NewBus(cfg.Events)

	guard := auth.NewLoginGuard(cfg.Security.LoginAttempts, cfg.Security.LoginRefill)
	accounts := account.NewService(st, engine, achievements.NewDefaultEngine(cat.Titles()), tokens,
		account.Config{
			BcryptCost: cfg.Security.BcryptCost,
			Stats: watchstate.StatsConfig{
				MinutesPerEpisode: cfg.Catalog.MinutesPerEpisode,
				PreviewCount:      cfg.Catalog.PreviewCount,
			},
		},
		account.WithLoginGuard(guard),
		account.WithPublisher(bus),
	)

	identifier := ratelimit.NewIdentifier(cfg.Security.TrustedProxies)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), nil)
	authn := auth.NewMiddleware(tokens, api.WriteAppError, cfg.IsProduction())

	handler := api.NewHandler(api.HandlerDeps{
		Accounts:   accounts,
		Admin:      admin.NewService(st, cat, engine),
		Catalog:    engine,
		Store:      st,
		Cookies:    authn,
		Identifier: identifier,
	})

	chiCfg := api.DefaultChiMiddlewareConfig()
	chiCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	chiCfg.RateLimitRequests = cfg.Security.GlobalRateLimit
	chiCfg.RateLimitWindow = cfg.Security.GlobalRateWindow
	chiCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	chiCfg.RateLimitKeyFunc = func(r *http.Request) (string, error) {
		return identifier.ClientIdentifier(r), nil
	}

	router := api.NewRouter(handler, api.RouterDeps{
		ChiConfig:         chiCfg,
		Authn:             authn,
		Authz:             authz.NewMiddleware(enforcer, st, api.WriteAppError),
		Limiter:           limiter,
		Identifier:        identifier,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS_ORIGINS=* lets any site call the API with the user's cookie; set explicit origins outside development")
	}

	return &app{
		cfg:     cfg,
		store:   st,
		bus:     bus,
		limiter: limiter,
		guard:   guard,
		handler: router.SetupChi(),
	}, nil
}

// close shuts the bus before the store so no publish races a closed backend.
func (a *app) close() {
	if err := a.bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}
	if err := a.store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
}

// buildTree registers every long-lived service of a on a new supervisor tree.
func (a *app) buildTree(server services.HTTPServer) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		return nil, err
	}

	if bs, ok := a.store.(*store.BadgerStore); ok && a.cfg.Store.BadgerGCInterval > 0 {
		tree.AddDataService(services.NewPeriodicService("badger-gc", func(context.Context) error {
			return bs.RunGC()
		}, services.PeriodicConfig{Interval: a.cfg.Store.BadgerGCInterval}))
	}

	tree.AddMessagingService(services.NewRunnerService("event-consumer", events.NewConsumer(a.bus)))
	tree.AddMessagingService(services.NewPeriodicService("rate-limit-sweep", func(context.Context) error {
		if n := a.limiter.Sweep(); n > 0 {
			logging.Debug().Int("removed", n).Msg("Expired rate limit windows swept")
		}
		return nil
	}, services.PeriodicConfig{Interval: sweepInterval}))
	tree.AddMessagingService(services.NewPeriodicService("login-guard-sweep", func(context.Context) error {
		a.guard.Sweep(loginGuardIdle)
		return nil
	}, services.PeriodicConfig{Interval: sweepInterval}))

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	return tree, nil
}

// serve runs the server until ctx is canceled.
func serve(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("store", cfg.Store.Driver).
		Msg("Starting MCU Tracker")

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := a.buildTree(server)
	if err != nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		serveErr = err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return serveErr
}
