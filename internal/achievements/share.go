// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package achievements

import (
	"fmt"

	"github.com/tomtom215/mcutracker/internal/watchstate"
)

const shareFooter = "\n\nPreparando para Vingadores: Doomsday!\n\n#MCUTracker #Marvel #Vingadores"

// Share is a ready-to-post progress summary.
type Share struct {
	Text                 string `json:"text"`
	Watched              int    `json:"watched"`
	Total                int    `json:"total"`
	Percentage           int    `json:"percentage"`
	Badge                string `json:"badge,omitempty"`
	UnlockedAchievements int    `json:"unlockedAchievements"`
}

// ShareBadge returns the title earned at a completion percentage.
func ShareBadge(percentage int) string {
	switch {
	case percentage >= 100:
		return "Completista!"
	case percentage >= 75:
		return "Veterano"
	case percentage >= 50:
		return "Fã Marvel"
	case percentage >= 25:
		return "Iniciante"
	default:
		return ""
	}
}

// ShareText builds the share message. An empty userName yields the first-person form.
func ShareText(userName string, watched, total, unlocked int) Share {
	pct := watchstate.Percent(watched, total)

	var text string
	if userName != "" {
		text = fmt.Sprintf("%s já assistiu %d de %d títulos do MCU (%d%%)!", userName, watched, total, pct)
	} else {
		text = fmt.Sprintf("Já assisti %d de %d títulos do MCU (%d%%)!", watched, total, pct)
	}

	badge := ShareBadge(pct)
	if badge != "" {
		text += " - " + badge + " "
	}
	if unlocked > 0 {
		text += fmt.Sprintf("\n🏆 %d conquistas desbloqueadas", unlocked)
	}

	return Share{
		Text:                 text + shareFooter,
		Watched:              watched,
		Total:                total,
		Percentage:           pct,
		Badge:                badge,
		UnlockedAchievements: unlocked,
	}
}
