// Package rules implements the deck composition validator: the counting rules
// that decide whether adding a card to a deck is legal. All functions are pure
// (no I/O); catalog access is injected as a lookup capability so the validator
// carries no storage dependency and is safe to call concurrently.
package rules

import (
	"fmt"

	"github.com/deckbase/deckbase/internal/core/domain"
)

// =============================================================================
// Types
// =============================================================================

// Limits holds the per-type construction caps.
type Limits struct {
	// MaxCharacters is the cap on distinct character cards.
	MaxCharacters int

	// MaxLocations is the cap on distinct location cards.
	MaxLocations int

	// MaxMissionCards is the cap on summed mission quantity.
	MaxMissionCards int
}

// DefaultLimits returns the standard construction caps: 4 characters,
// 1 location, 7 mission cards.
func DefaultLimits() Limits {
	return Limits{
		MaxCharacters:   4,
		MaxLocations:    1,
		MaxMissionCards: 7,
	}
}

// CardLookup fetches catalog metadata for a card. The second return value is
// false when the card is not in the catalog; the validator treats that as
// "no one-per-deck constraint to check" rather than a hard failure, since
// catalog integrity is enforced upstream.
type CardLookup func(t domain.CardType, cardID string) (*domain.CardDefinition, bool)

// Violation describes why an addition was rejected. Message is user-facing
// and part of the observable contract; it is surfaced verbatim.
type Violation struct {
	Message string
}

// Error returns the user-facing message.
func (v *Violation) Error() string {
	return v.Message
}

// violationf builds a Violation from a format string.
func violationf(format string, args ...any) *Violation {
	return &Violation{Message: fmt.Sprintf(format, args...)}
}

// =============================================================================
// Quantity Bounds
// =============================================================================

const (
	// MinQuantity and MaxQuantity bound a single addition. Values outside the
	// range are a caller error, rejected before any game rule runs.
	MinQuantity = 1
	MaxQuantity = 10
)

// =============================================================================
// Validator
// =============================================================================

// ValidateAddition decides whether adding quantity copies of the given card is
// legal for a deck currently holding cards. It returns nil when the addition
// is legal, or a Violation whose message names the first rule broken.
//
// Rules run in a fixed order; the first failure wins and later rules are not
// evaluated. Input checks (recognized type, non-empty id, quantity bounds) run
// before any game rule, so malformed input is rejected even for an empty deck.
//
// A nil cards slice is treated as an empty deck. The function never mutates
// its inputs.
func ValidateAddition(cards []domain.DeckCard, t domain.CardType, cardID string, quantity int, lookup CardLookup) *Violation {
	if !t.IsValid() {
		return violationf("Unknown card type: %s", string(t))
	}
	if cardID == "" {
		return violationf("Card id is required.")
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return violationf("Quantity must be between %d and %d.", MinQuantity, MaxQuantity)
	}

	limits := DefaultLimits()
	already := domain.Contains(cards, t, cardID)

	// Character cap counts distinct cards; a duplicate does not raise the
	// distinct count, it is caught by the duplicate rule below.
	if t == domain.CardTypeCharacter {
		wouldBe := domain.DistinctCount(cards, t)
		if !already {
			wouldBe++
		}
		if wouldBe > limits.MaxCharacters {
			return violationf("Deck cannot have more than %d characters (would have %d)", limits.MaxCharacters, wouldBe)
		}
	}

	if t == domain.CardTypeLocation {
		if domain.DistinctCount(cards, t) >= limits.MaxLocations || quantity > 1 {
			return violationf("Unable to add location, may only have 1 per deck.")
		}
	}

	if t == domain.CardTypeMission {
		wouldBe := domain.QuantitySum(cards, t) + quantity
		if wouldBe > limits.MaxMissionCards {
			return violationf("Deck cannot have more than %d mission cards (would have %d)", limits.MaxMissionCards, wouldBe)
		}
	}

	// One-per-deck flag from the catalog. Characters get their own friendlier
	// phrasing below; locations were already handled above.
	if lookup != nil && t != domain.CardTypeCharacter && t != domain.CardTypeLocation {
		if def, ok := lookup(t, cardID); ok && def.OnePerDeck {
			if already || quantity > 1 {
				wouldBe := domain.QuantityOf(cards, t, cardID) + quantity
				return violationf("Card can only have 1 copy per deck (would have %d)", wouldBe)
			}
		}
	}

	// Characters are inherently unique: a second copy always fails, whatever
	// the distinct count is.
	if t == domain.CardTypeCharacter {
		if already || quantity > 1 {
			return violationf("Unable to add character, may only have 1 of each character.")
		}
	}

	// Default cap for types without a named rule: one copy per distinct card.
	// Mission is the only stackable type.
	if stacking := t == domain.CardTypeMission || t == domain.CardTypeCharacter || t == domain.CardTypeLocation; !stacking {
		if already || quantity > 1 {
			wouldBe := domain.QuantityOf(cards, t, cardID) + quantity
			return violationf("Card can only have 1 copy per deck (would have %d)", wouldBe)
		}
	}

	return nil
}
