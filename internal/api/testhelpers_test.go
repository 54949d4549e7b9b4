// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/mcutracker/internal/account"
	"github.com/tomtom215/mcutracker/internal/achievements"
	"github.com/tomtom215/mcutracker/internal/admin"
	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/authz"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/merge"
	"github.com/tomtom215/mcutracker/internal/ratelimit"
	"github.com/tomtom215/mcutracker/internal/store"
)

// testServer is the full HTTP stack over an in-memory Badger store.
type testServer struct {
	handler http.Handler
	store   *store.BadgerStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithProxies(t, nil)
}

// newTestServerWithProxies builds the stack with forwarding headers honored
// only from trustedProxies.
func newTestServerWithProxies(t *testing.T, trustedProxies []string) *testServer {
	t.Helper()

	st, err := store.OpenBadger(config.StoreConfig{BadgerInMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cat := catalog.MustDefault()
	engine := merge.NewEngine(cat, st, config.BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  5,
		FailureRatio: 0.5,
	})

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:      strings.Repeat("k", 32),
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	accounts := account.NewService(st, engine, achievements.NewDefaultEngine(cat.Titles()), tokens,
		account.Config{BcryptCost: bcrypt.MinCost})
	authn := auth.NewMiddleware(tokens, WriteAppError, false)
	identifier := ratelimit.NewIdentifier(trustedProxies)

	handler := NewHandler(HandlerDeps{
		Accounts:   accounts,
		Admin:      admin.NewService(st, cat, engine),
		Catalog:    engine,
		Store:      st,
		Cookies:    authn,
		Identifier: identifier,
	})
	router := NewRouter(handler, RouterDeps{
		Authn:      authn,
		Authz:      authz.NewMiddleware(enforcer, st, WriteAppError),
		Limiter:    ratelimit.NewLimiter(ratelimit.NewMemoryStore(), nil),
		Identifier: identifier,
	})

	return &testServer{handler: router.SetupChi(), store: st}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

type call struct {
	method string
	path   string
	body   string
	token  string
	cookie *http.Cookie
	remote string
	header map[string]string
}

func (s *testServer) do(t *testing.T, c call) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	if c.remote != "" {
		req.RemoteAddr = c.remote
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v\n%s", c.method, c.path, err, rec.Body.String())
		}
	}
	return rec, env
}

// decodeData unmarshals env.Data into v.
func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

// registerAndLogin creates an account and returns its token.
func (s *testServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	rec, _ := s.do(t, call{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   `{"name":"Peter Parker","email":"` + email + `","password":"spidey123"}`,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}

	rec, env := s.do(t, call{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   `{"email":"` + email + `","password":"spidey123"}`,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var res account.LoginResult
	decodeData(t, env, &res)
	return res.Token
}

func (s *testServer) promote(t *testing.T, email string) {
	t.Helper()
	if err := s.store.SetAdmin(context.Background(), email, true); err != nil {
		t.Fatalf("SetAdmin() error = %v", err)
	}
}
