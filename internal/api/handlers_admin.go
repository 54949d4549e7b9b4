// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"net/http"

	"github.com/tomtom215/mcutracker/internal/admin"
	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/authz"
)

// editor returns the email of the admin making the request.
func editor(r *http.Request) (string, error) {
	user, ok := authz.UserFromContext(r.Context())
	if !ok {
		return "", apperr.New(apperr.Authentication, msgUnauthorized)
	}
	return user.Email, nil
}

// AdminListOverrides returns every stored override with editor metadata.
//
// @Summary List overrides (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=object{items=[]models.Override}} "Overrides sorted by itemId"
// @Failure 401 {object} APIResponse "Not authenticated"
// @Failure 403 {object} APIResponse "Not an administrator"
// @Router /admin/mcu-items [get]
func (h *Handler) AdminListOverrides(w http.ResponseWriter, r *http.Request) {
	items, err := h.admin.ListOverrides(r.Context())
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"items": items})
}

// AdminUpsertOverride creates or replaces the override of one title.
//
// @Summary Upsert an override (admin)
// @Description Replaces the stored field set of itemId. Omitted fields are cleared and fall back to the catalog value.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body admin.UpsertRequest true "Override"
// @Success 200 {object} APIResponse{data=object{item=models.Override,message=string}} "Saved"
// @Failure 400 {object} APIResponse "Missing itemId"
// @Failure 403 {object} APIResponse "Not an administrator"
// @Failure 500 {object} APIResponse "Store failure"
// @Router /admin/mcu-items [post]
func (h *Handler) AdminUpsertOverride(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	email, err := editor(r)
	if err != nil {
		rw.AppError(err)
		return
	}

	var req admin.UpsertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.AppError(err)
		return
	}

	item, err := h.admin.UpsertOverride(r.Context(), email, req)
	if err != nil {
		rw.AppError(err)
		return
	}
	rw.Success(map[string]interface{}{
		"item":    item,
		"message": "Item atualizado com sucesso!",
	})
}

// AdminPurgeDeadImages clears denylisted image URLs from stored overrides.
//
// @Summary Purge dead image overrides (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=admin.PurgeResult} "Purge result"
// @Failure 403 {object} APIResponse "Not an administrator"
// @Router /admin/mcu-items/purge-dead-images [post]
func (h *Handler) AdminPurgeDeadImages(w http.ResponseWriter, r *http.Request) {
	email, err := editor(r)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	res, err := h.admin.PurgeDeadImages(r.Context(), email)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteSuccess(w, r, res)
}
