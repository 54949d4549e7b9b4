// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package account

import (
	"github.com/tomtom215/mcutracker/internal/achievements"
	"github.com/tomtom215/mcutracker/internal/models"
)

// MaxWatchedItems caps a progress replacement.
const MaxWatchedItems = 200

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=100"`
}

// ProgressRequest replaces the watched set.
type ProgressRequest struct {
	WatchedItems []string `json:"watchedItems" validate:"required,max=200,dive,notblank,max=100"`
}

// ToggleRequest flips one id.
type ToggleRequest struct {
	ItemID string `json:"itemId" validate:"notblank,max=100"`
}

// PublicUser is the registration response body.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionUser is the login response body.
type SessionUser struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	WatchedItems []string `json:"watchedItems"`
	IsAdmin      bool     `json:"isAdmin"`
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// ProgressResult is the outcome of a progress write.
type ProgressResult struct {
	WatchedItems  []string `json:"watchedItems"`
	NewlyUnlocked []string `json:"newlyUnlocked"`
}

// ToggleResult is the outcome of a single toggle.
type ToggleResult struct {
	WatchedItems  []string `json:"watchedItems"`
	Watched       bool     `json:"watched"`
	NewlyUnlocked []string `json:"newlyUnlocked"`
}

// AchievementsResult is every achievement with its state and a summary.
type AchievementsResult struct {
	Achievements []achievements.Status `json:"achievements"`
	Summary      achievements.Summary  `json:"summary"`
}

func publicUser(u *models.User) PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
