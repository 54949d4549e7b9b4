// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"net/http"

	"github.com/tomtom215/mcutracker/internal/account"
)

// Register creates an account.
//
// @Summary Register an account
// @Description Creates an account. The email is stored lowercased and must be unique.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body account.RegisterRequest true "Account details"
// @Success 201 {object} APIResponse{data=object{user=account.PublicUser}} "Account created"
// @Failure 400 {object} APIResponse "Validation failed or email already registered"
// @Failure 429 {object} APIResponse "Rate limited"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req account.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.AppError(err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req, h.identifier.ClientIdentifier(r))
	if err != nil {
		rw.AppError(err)
		return
	}

	rw.Created(map[string]interface{}{"user": user})
}

// Login authenticates an account and issues a session token.
//
// @Summary Log in
// @Description Checks credentials and returns a signed token. The token is also set as the HttpOnly "token" cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body account.LoginRequest true "Credentials"
// @Success 200 {object} APIResponse{data=account.LoginResult} "Logged in"
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Wrong email or password"
// @Failure 429 {object} APIResponse "Rate limited"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req account.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.AppError(err)
		return
	}

	res, err := h.accounts.Login(r.Context(), req, h.identifier.ClientIdentifier(r))
	if err != nil {
		rw.AppError(err)
		return
	}

	if h.cookies != nil {
		h.cookies.SetTokenCookie(w, res.Token)
	}
	rw.Success(res)
}

// Logout clears the session cookie. Bearer tokens stay valid until they expire.
//
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} APIResponse "Cookie cleared"
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cookies != nil {
		h.cookies.ClearTokenCookie(w)
	}
	WriteSuccess(w, r, map[string]string{"message": "Logout realizado com sucesso"})
}
