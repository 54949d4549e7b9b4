// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package apperr classifies failures so the HTTP layer can map them to a
// status code and envelope error code without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind identifies a failure class.
type Kind int

const (
	// Internal is any unclassified failure.
	Internal Kind = iota
	// Validation means malformed or missing input, detected before storage access.
	Validation
	// Authentication means a missing, invalid or expired session token, or bad credentials.
	Authentication
	// Authorization means a valid session without sufficient privilege.
	Authorization
	// NotFound means the referenced account or title does not exist.
	NotFound
	// RateLimited means a request quota was exceeded.
	RateLimited
	// StoreUnavailable means the persistence layer could not be reached.
	StoreUnavailable
	// Conflict means a uniqueness constraint was violated.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Authentication:
		return "authentication"
	case Authorization:
		return "authorization"
	case NotFound:
		return "not_found"
	case RateLimited:
		return "rate_limited"
	case StoreUnavailable:
		return "store_unavailable"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status returns the HTTP status for k.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string

	// RetryAfter is set for RateLimited errors.
	RetryAfter time.Duration

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error of kind k.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// Newf returns an Error of kind k with a formatted message.
func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err as kind k. A nil err returns nil.
func Wrap(err error, k Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Message: msg, Err: err}
}

// Limited returns a RateLimited error carrying the retry hint.
func Limited(retryAfter time.Duration) *Error {
	return &Error{Kind: RateLimited, Message: "Muitas requisições. Tente novamente mais tarde.", RetryAfter: retryAfter}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is classified as k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

// MessageOf returns the client-facing message for err. Internal errors get a
// generic message so that store details never reach the client.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal && e.Kind != StoreUnavailable {
		return e.Message
	}
	if errors.As(err, &e) && e.Kind == StoreUnavailable {
		return "Serviço de dados temporariamente indisponível"
	}
	return "Erro interno do servidor"
}
