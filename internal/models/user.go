// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package models

import (
	"strings"
	"time"
)

// Role names used by the Casbin policy in internal/authz.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultLastSeenVersion is the lastSeenVersion of a fresh account.
const DefaultLastSeenVersion = "0.0.0"

// Preferences holds per-account UI flags.
type Preferences struct {
	HideWhatsNew       bool   `json:"hideWhatsNew" bson:"hideWhatsNew"`
	HideOnboarding     bool   `json:"hideOnboarding" bson:"hideOnboarding"`
	HideSpoilerWarning bool   `json:"hideSpoilerWarning" bson:"hideSpoilerWarning"`
	LastSeenVersion    string `json:"lastSeenVersion" bson:"lastSeenVersion"`
}

// DefaultPreferences returns the preferences of a new account.
func DefaultPreferences() Preferences {
	return Preferences{LastSeenVersion: DefaultLastSeenVersion}
}

// WithDefaults fills unset fields with their defaults.
func (p Preferences) WithDefaults() Preferences {
	if p.LastSeenVersion == "" {
		p.LastSeenVersion = DefaultLastSeenVersion
	}
	return p
}

// PreferencesPatch is a partial preferences update; nil fields are left unchanged.
type PreferencesPatch struct {
	HideWhatsNew       *bool   `json:"hideWhatsNew,omitempty"`
	HideOnboarding     *bool   `json:"hideOnboarding,omitempty"`
	HideSpoilerWarning *bool   `json:"hideSpoilerWarning,omitempty"`
	LastSeenVersion    *string `json:"lastSeenVersion,omitempty"`
}

// Empty reports whether the patch sets no field.
func (p PreferencesPatch) Empty() bool {
	return p.HideWhatsNew == nil && p.HideOnboarding == nil &&
		p.HideSpoilerWarning == nil && p.LastSeenVersion == nil
}

// Apply returns prefs with the patch applied.
func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	if p.HideWhatsNew != nil {
		prefs.HideWhatsNew = *p.HideWhatsNew
	}
	if p.HideOnboarding != nil {
		prefs.HideOnboarding = *p.HideOnboarding
	}
	if p.HideSpoilerWarning != nil {
		prefs.HideSpoilerWarning = *p.HideSpoilerWarning
	}
	if p.LastSeenVersion != nil {
		prefs.LastSeenVersion = *p.LastSeenVersion
	}
	return prefs
}

// User is a persisted account.
type User struct {
	ID           string      `json:"id" bson:"_id"`
	Name         string      `json:"name" bson:"name"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password"`
	WatchedItems []string    `json:"watchedItems" bson:"watchedItems"`
	IsAdmin      bool        `json:"isAdmin" bson:"isAdmin"`
	Preferences  Preferences `json:"preferences" bson:"preferences"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// Role returns the Casbin subject role for u.
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
