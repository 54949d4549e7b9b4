// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/catalog"
	"github.com/tomtom215/mcutracker/internal/models"
)

const (
	maxSearchLength = 100
	maxPhase        = 6
)

// ListOverrides returns the public projection of every stored override.
// A store failure degrades to an empty mapping with a 200.
//
// @Summary Get title overrides
// @Description Override fields keyed by title id. Returns an empty mapping when the store is unavailable.
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=object{items=map[string]models.OverrideFields}} "Overrides"
// @Router /mcu [get]
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, _ := h.catalog.Overrides(r.Context())

	items := make(map[string]models.OverrideFields, len(overrides))
	for id, o := range overrides {
		items[id] = o.Fields()
	}
	WriteSuccess(w, r, map[string]interface{}{"items": items})
}

// ListCatalog returns the effective catalog, filtered and ordered.
//
// @Summary List titles
// @Description Effective catalog with overrides applied.
// @Tags Catalog
// @Produce json
// @Param type query string false "all, movie or series"
// @Param phase query int false "Phase 1-6"
// @Param year query string false "Comma-separated release years"
// @Param director query string false "Comma-separated directors or creators"
// @Param q query string false "Case-insensitive title search"
// @Param order query string false "chronological (default) or release"
// @Success 200 {object} APIResponse{data=object{items=[]models.Title,total=int}} "Titles"
// @Failure 400 {object} APIResponse "Invalid filter"
// @Router /catalog [get]
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	q, err := parseCatalogQuery(r)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	titles := catalog.Apply(h.catalog.Titles(r.Context()), q)
	WriteSuccess(w, r, map[string]interface{}{
		"items": titles,
		"total": len(titles),
	})
}

// GetTitle returns one effective title.
//
// @Summary Get a title
// @Tags Catalog
// @Produce json
// @Param id path string true "Title id"
// @Success 200 {object} APIResponse{data=models.Title} "Title"
// @Failure 404 {object} APIResponse "Unknown id"
// @Router /catalog/{id} [get]
func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	title, ok := h.catalog.Title(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Título não encontrado")
		return
	}
	WriteSuccess(w, r, title)
}

// Timeline groups the filtered catalog by phase.
//
// @Summary Get the timeline
// @Description Titles grouped by phase in ascending order, each group ordered and counted by type. Accepts the same filters as /catalog.
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=object{phases=[]catalog.PhaseGroup}} "Timeline"
// @Failure 400 {object} APIResponse "Invalid filter"
// @Router /catalog/timeline [get]
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	q, err := parseCatalogQuery(r)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	titles := catalog.Apply(h.catalog.Titles(r.Context()), q)
	WriteSuccess(w, r, map[string]interface{}{
		"phases": h.catalog.Catalog().Timeline(titles, q.Order),
	})
}

// Facets lists the distinct filter values.
//
// @Summary Get filter facets
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=catalog.Facets} "Release years and directors"
// @Router /catalog/facets [get]
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, catalog.FacetsOf(h.catalog.Catalog().Titles()))
}

// parseCatalogQuery reads the catalog filters from r's query string.
func parseCatalogQuery(r *http.Request) (catalog.Query, error) {
	values := r.URL.Query()
	var q catalog.Query

	typ, err := catalog.ParseType(values.Get("type"))
	if err != nil {
		return q, apperr.Wrap(err, apperr.Validation, "Tipo inválido")
	}
	q.Type = typ

	if raw := values.Get("phase"); raw != "" {
		phase, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || phase < 1 || phase > maxPhase {
			return q, apperr.New(apperr.Validation, "Fase inválida")
		}
		q.Phase = phase
	}

	years, err := parseCommaSeparatedInts(values.Get("year"))
	if err != nil {
		return q, apperr.Wrap(err, apperr.Validation, "Ano inválido")
	}
	q.Years = years
	for _, v := range values["director"] {
		q.Makers = append(q.Makers, parseCommaSeparated(v)...)
	}

	q.Search = strings.TrimSpace(values.Get("q"))
	if len(q.Search) > maxSearchLength {
		return q, apperr.New(apperr.Validation, "Busca muito longa")
	}

	order, err := catalog.ParseOrder(values.Get("order"))
	if err != nil {
		return q, apperr.Wrap(err, apperr.Validation, "Ordem inválida")
	}
	q.Order = order

	return q, nil
}
