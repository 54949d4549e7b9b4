// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mcutracker/internal/apperr"
	"github.com/tomtom215/mcutracker/internal/auth"
)

// maxBodyBytes bounds request bodies. The largest legitimate payload is a
// progress save of 200 ids.
const maxBodyBytes = 64 << 10

// decodeJSON reads r's body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.Validation, msgInvalidBody)
		}
		return apperr.Wrap(err, apperr.Validation, msgInvalidBody)
	}
	return nil
}

// userID returns the authenticated user ID set by auth.Middleware.
func userID(r *http.Request) (string, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		return "", apperr.New(apperr.Authentication, msgUnauthorized)
	}
	return claims.UserID, nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseCommaSeparatedInts parses a comma-separated list of integers. Any
// malformed entry is an error.
func parseCommaSeparatedInts(value string) ([]int, error) {
	parts := parseCommaSeparated(value)
	if len(parts) == 0 {
		return nil, nil
	}

	result := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
