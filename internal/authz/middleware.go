// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package authz

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/auth"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/store"
)

type contextKey string

const userContextKey contextKey = "authz-user"

// UserLookup loads the account behind a token. store.UserStore satisfies it.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Middleware provides authorization middleware using Casbin.
type Middleware struct {
	enforcer   *Enforcer
	users      UserLookup
	writeError auth.ErrorWriter
	security   *logging.SecurityLogger
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer, users UserLookup, writeError auth.ErrorWriter) *Middleware {
	if writeError == nil {
		writeError = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, apperr.MessageOf(err), apperr.StatusOf(err))
		}
	}
	return &Middleware{
		enforcer:   enforcer,
		users:      users,
		writeError: writeError,
		security:   logging.NewSecurityLogger(),
	}
}

// Authorize loads the caller's account and checks its role against the
// request path and method. It must run after auth.Middleware.Authenticate.
// The loaded account is available to handlers through UserFromContext.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			m.writeError(w, r, apperr.New(apperr.Authentication, "Não autorizado"))
			return
		}

		user, err := m.users.GetUser(r.Context(), claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			m.writeError(w, r, apperr.New(apperr.NotFound, "Usuário não encontrado"))
			return
		}
		if err != nil {
			m.writeError(w, r, err)
			return
		}

		allowed, err := m.enforcer.Enforce(user.Role(), r.URL.Path, methodToAction(r.Method))
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.writeError(w, r, apperr.Wrap(err, apperr.Internal, "Erro interno"))
			return
		}

		if !allowed {
			m.security.LogAccessDenied(user.ID, r.URL.Path, http.StatusForbidden)
			m.writeError(w, r, apperr.New(apperr.Authorization, "Acesso negado. Você não é administrador."))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// ContextWithUser returns ctx carrying the authorized account.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the account stored by Authorize.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok && user != nil
}

// methodToAction maps HTTP methods to Casbin actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "read"
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return "write"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}
