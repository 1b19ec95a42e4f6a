// Package domain contains the core domain types for the card catalog and
// deck construction. This is part of the Functional Core - all functions are
// pure with no I/O.
package domain

import (
	"errors"
	"strings"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnknownCardType is returned when parsing an unrecognized card type tag.
	ErrUnknownCardType = errors.New("unknown card type")

	// ErrEmptyCardID is returned when a card reference has no identifier.
	ErrEmptyCardID = errors.New("card id is required")
)

// =============================================================================
// Card Types
// =============================================================================

// CardType tags a card with its place in the game taxonomy.
type CardType string

const (
	CardTypeCharacter        CardType = "character"
	CardTypeLocation         CardType = "location"
	CardTypeMission          CardType = "mission"
	CardTypeEvent            CardType = "event"
	CardTypeSpecial          CardType = "special"
	CardTypeAspect           CardType = "aspect"
	CardTypeAdvancedUniverse CardType = "advanced_universe"
	CardTypeTeamwork         CardType = "teamwork"
	CardTypeAllyUniverse     CardType = "ally_universe"
	CardTypeTraining         CardType = "training"
	CardTypeBasicUniverse    CardType = "basic_universe"
	CardTypePower            CardType = "power"
)

// AllCardTypes lists every recognized card type, in display order.
var AllCardTypes = []CardType{
	CardTypeCharacter,
	CardTypeLocation,
	CardTypeMission,
	CardTypeEvent,
	CardTypeSpecial,
	CardTypeAspect,
	CardTypeAdvancedUniverse,
	CardTypeTeamwork,
	CardTypeAllyUniverse,
	CardTypeTraining,
	CardTypeBasicUniverse,
	CardTypePower,
}

// IsValid checks if the card type is part of the taxonomy.
func (t CardType) IsValid() bool {
	switch t {
	case CardTypeCharacter, CardTypeLocation, CardTypeMission, CardTypeEvent,
		CardTypeSpecial, CardTypeAspect, CardTypeAdvancedUniverse, CardTypeTeamwork,
		CardTypeAllyUniverse, CardTypeTraining, CardTypeBasicUniverse, CardTypePower:
		return true
	default:
		return false
	}
}

// ParseCardType parses a card type tag, case-insensitively.
func ParseCardType(s string) (CardType, error) {
	t := CardType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrUnknownCardType
	}
	return t, nil
}

// =============================================================================
// Card Definition
// =============================================================================

// AnyCharacter is the sentinel value for character-scoped cards usable by any
// character.
const AnyCharacter = "any"

// CardDefinition is the read-only catalog entry for a card. The one-per-deck
// flag is normalized at the catalog-loading boundary; the two column spellings
// in the source data never reach this type.
type CardDefinition struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       CardType `json:"type"`
	Text       string   `json:"text,omitempty"`
	OnePerDeck bool     `json:"one_per_deck"`

	// Character restricts character-scoped cards (specials, advanced universe)
	// to one character name, or AnyCharacter.
	Character string `json:"character,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
	SetID    string `json:"set_id,omitempty"`
}

// ScopedTo reports whether the card is restricted to the given character.
// Cards scoped to AnyCharacter match every character.
func (d CardDefinition) ScopedTo(character string) bool {
	if d.Character == "" || d.Character == AnyCharacter {
		return true
	}
	return strings.EqualFold(d.Character, character)
}
