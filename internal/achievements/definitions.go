// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package achievements

import "github.com/tomtom215/mcutracker/internal/models"

// Rarity grades an achievement. It is display metadata only.
type Rarity string

// Rarities.
const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Label returns the Portuguese display label.
func (r Rarity) Label() string {
	switch r {
	case Common:
		return "Comum"
	case Rare:
		return "Raro"
	case Epic:
		return "Épico"
	case Legendary:
		return "Lendário"
	default:
		return string(r)
	}
}

// RuleKind selects how a rule measures progress.
type RuleKind string

// Rule kinds.
const (
	// KindCount unlocks after N catalog titles are watched.
	KindCount RuleKind = "count"
	// KindCatalog unlocks when every catalog title is watched.
	KindCatalog RuleKind = "catalog"
	// KindPhase unlocks when every title of one phase is watched.
	KindPhase RuleKind = "phase"
	// KindType unlocks when every title of one type is watched.
	KindType RuleKind = "type"
	// KindKeywords unlocks when every title whose name contains a keyword is watched.
	KindKeywords RuleKind = "keywords"
)

// Rule is the data an achievement is evaluated from.
type Rule struct {
	Kind     RuleKind         `json:"kind"`
	Count    int              `json:"count,omitempty"`
	Phase    int              `json:"phase,omitempty"`
	Type     models.TitleType `json:"type,omitempty"`
	Keywords []string         `json:"keywords,omitempty"`
}

// Count returns a cardinality rule.
func Count(n int) Rule { return Rule{Kind: KindCount, Count: n} }

// WholeCatalog returns a rule over every catalog title.
func WholeCatalog() Rule { return Rule{Kind: KindCatalog} }

// Phase returns a per-phase completeness rule.
func Phase(k int) Rule { return Rule{Kind: KindPhase, Phase: k} }

// OfType returns a per-type completeness rule.
func OfType(t models.TitleType) Rule { return Rule{Kind: KindType, Type: t} }

// Keywords returns a title-group completeness rule. Keywords are matched
// case-insensitively against the localized and original titles.
func Keywords(kw ...string) Rule { return Rule{Kind: KindKeywords, Keywords: kw} }

// Achievement is a static badge definition.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      Rarity `json:"rarity"`
	Rule        Rule   `json:"-"`
}

// Definitions returns the fixed achievement list in declaration order.
func Definitions() []Achievement {
	return []Achievement{
		{ID: "first-watch", Title: "Primeira Missão", Description: "Assista seu primeiro título do MCU", Icon: "🎬", Rarity: Common, Rule: Count(1)},
		{ID: "getting-started", Title: "Iniciante", Description: "Assista 5 títulos do MCU", Icon: "🌟", Rarity: Common, Rule: Count(5)},
		{ID: "fan", Title: "Fã Marvel", Description: "Assista 15 títulos do MCU", Icon: "❤️", Rarity: Rare, Rule: Count(15)},
		{ID: "veteran", Title: "Veterano", Description: "Assista 30 títulos do MCU", Icon: "🏆", Rarity: Epic, Rule: Count(30)},
		{ID: "completionist", Title: "Completista", Description: "Assista todos os títulos do MCU", Icon: "👑", Rarity: Legendary, Rule: WholeCatalog()},

		{ID: "phase1-complete", Title: "Saga do Infinito: Início", Description: "Complete toda a Fase 1", Icon: "1️⃣", Rarity: Rare, Rule: Phase(1)},
		{ID: "phase2-complete", Title: "Novos Heróis", Description: "Complete toda a Fase 2", Icon: "2️⃣", Rarity: Rare, Rule: Phase(2)},
		{ID: "phase3-complete", Title: "Guerra Infinita", Description: "Complete toda a Fase 3", Icon: "3️⃣", Rarity: Epic, Rule: Phase(3)},
		{ID: "phase4-complete", Title: "Multiverso", Description: "Complete toda a Fase 4", Icon: "4️⃣", Rarity: Epic, Rule: Phase(4)},
		{ID: "phase5-complete", Title: "Nova Era", Description: "Complete toda a Fase 5", Icon: "5️⃣", Rarity: Epic, Rule: Phase(5)},

		{ID: "avengers-assembled", Title: "Vingadores Reunidos", Description: "Assista todos os filmes dos Vingadores", Icon: "🔵", Rarity: Epic, Rule: Keywords("vingadores", "avengers")},
		{ID: "movie-buff", Title: "Cinéfilo Marvel", Description: "Assista todos os filmes do MCU", Icon: "🎥", Rarity: Legendary, Rule: OfType(models.TypeMovie)},
		{ID: "series-binger", Title: "Maratonista de Séries", Description: "Assista todas as séries do MCU", Icon: "📺", Rarity: Legendary, Rule: OfType(models.TypeSeries)},
		{ID: "iron-man-saga", Title: "Eu Sou o Homem de Ferro", Description: "Assista toda a trilogia do Homem de Ferro", Icon: "🔴", Rarity: Rare, Rule: Keywords("homem de ferro", "iron man")},
		{ID: "guardian-fan", Title: "Guardiões da Galáxia", Description: "Assista todos os títulos dos Guardiões", Icon: "🚀", Rarity: Rare, Rule: Keywords("guardiões", "guardians")},
		{ID: "spider-verse", Title: "Com Grandes Poderes", Description: "Assista todos os filmes do Homem-Aranha no MCU", Icon: "🕷️", Rarity: Rare, Rule: Keywords("homem-aranha", "spider-man")},
		{ID: "thor-saga", Title: "Deus do Trovão", Description: "Assista todos os filmes do Thor", Icon: "⚡", Rarity: Rare, Rule: Keywords("thor")},
		{ID: "captain-saga", Title: "Posso Fazer Isso o Dia Todo", Description: "Assista todos os filmes do Capitão América", Icon: "🛡️", Rarity: Rare, Rule: Keywords("capitão américa", "captain america")},
	}
}
