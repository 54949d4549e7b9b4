// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator that reports JSON field names and
// translates failures into the Portuguese messages shown by the client:
//
//	type RegisterRequest struct {
//	    Name     string `json:"name" validate:"required,min=2,max=100"`
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required,min=6,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // verr.Error():   "Senha deve ter pelo menos 6 caracteres"
//	    // verr.Details(): {"field": "password", "tag": "min"}
//	    // errors.Is-compatible: apperr.KindOf(verr) == apperr.Validation
//	}
//
// # Custom Tags
//
//   - notblank: the string is non-empty after trimming whitespace
//
// # Thread Safety
//
// The singleton is initialized with sync.Once and may be used from any
// goroutine.
package validation
