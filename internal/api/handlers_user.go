// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"net/http"

	"github.com/tomtom215/mcutracker/internal/account"
	"github.com/tomtom215/mcutracker/internal/models"
)

// GetProgress returns the watched set.
//
// @Summary Get watch progress
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=object{watchedItems=[]string}} "Watched ids, sorted"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Failure 404 {object} APIResponse "User not found"
// @Router /user/progress [get]
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	items, err := h.accounts.Progress(r.Context(), id)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(map[string]interface{}{"watchedItems": items})
}

// SaveProgress replaces the watched set.
//
// @Summary Replace watch progress
// @Description Replaces the watched set with the deduplicated list (at most 200 ids) and reports achievements unlocked by the change.
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body account.ProgressRequest true "Watched ids"
// @Success 200 {object} APIResponse{data=account.ProgressResult} "Saved"
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Failure 500 {object} APIResponse "Store failure"
// @Router /user/progress [post]
func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	var req account.ProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.AppError(err)
		return
	}

	res, err := h.accounts.ReplaceProgress(r.Context(), id, req)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(res)
}

// ToggleProgress flips one id in the watched set.
//
// @Summary Toggle one watched title
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body account.ToggleRequest true "Title id"
// @Success 200 {object} APIResponse{data=account.ToggleResult} "Toggled"
// @Failure 400 {object} APIResponse "Missing itemId"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Router /user/progress/toggle [post]
func (h *Handler) ToggleProgress(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	var req account.ToggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.AppError(err)
		return
	}

	res, err := h.accounts.Toggle(r.Context(), id, req)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(res)
}

// GetPreferences returns the UI preferences with defaults filled in.
//
// @Summary Get preferences
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=object{preferences=models.Preferences}} "Preferences"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Router /user/preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	prefs, err := h.accounts.Preferences(r.Context(), id)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(map[string]interface{}{"preferences": prefs})
}

// PatchPreferences updates the known preference fields present in the body.
//
// @Summary Update preferences
// @Description Only hideWhatsNew, hideOnboarding, hideSpoilerWarning and lastSeenVersion are applied; other fields are ignored.
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PreferencesPatch true "Fields to change"
// @Success 200 {object} APIResponse{data=object{preferences=models.Preferences}} "Updated preferences"
// @Failure 400 {object} APIResponse "No known field present"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Router /user/preferences [patch]
func (h *Handler) PatchPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	var patch models.PreferencesPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		rw.AppError(err)
		return
	}

	prefs, err := h.accounts.PatchPreferences(r.Context(), id, patch)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(map[string]interface{}{"preferences": prefs})
}

// GetStats returns the progress summary.
//
// @Summary Get progress statistics
// @Description Counts by type and phase, estimated runtime, next-up and recently watched previews.
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=watchstate.Stats} "Statistics"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Router /user/stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	stats, err := h.accounts.Stats(r.Context(), id)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(stats)
}

// GetAchievements returns every achievement with its state.
//
// @Summary Get achievements
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=account.AchievementsResult} "Achievements and summary"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Router /user/achievements [get]
func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	res, err := h.accounts.Achievements(r.Context(), id)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(res)
}

// GetShare returns a ready-to-post progress message.
//
// @Summary Get share text
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=achievements.Share} "Share text"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Router /user/share [get]
func (h *Handler) GetShare(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := userID(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	share, err := h.accounts.Share(r.Context(), id)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(share)
}
