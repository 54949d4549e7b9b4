// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package events

import "time"

// Topic names
const (
	TopicProgressUpdated     = "progress.updated"
	TopicAchievementUnlocked = "achievement.unlocked"
)

// Progress change kinds
const (
	KindReplace = "replace"
	KindToggle  = "toggle"
)

// MetadataCorrelationID is the message metadata key holding the request correlation id.
const MetadataCorrelationID = "correlation_id"

// ProgressUpdated is published after a user's watched set is persisted.
type ProgressUpdated struct {
	UserID        string    `json:"userId"`
	Kind          string    `json:"kind"`
	ItemID        string    `json:"itemId,omitempty"`
	WatchedCount  int       `json:"watchedCount"`
	NewlyUnlocked []string  `json:"newlyUnlocked,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// AchievementUnlocked is published once per achievement a save unlocked.
type AchievementUnlocked struct {
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	OccurredAt    time.Time `json:"occurredAt"`
}
