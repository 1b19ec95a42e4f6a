package rules

import "github.com/deckbase/deckbase/internal/core/domain"

// =============================================================================
// Dimming Predicate
// =============================================================================

// ShouldDimCard reports whether a catalog card should be shown as unavailable:
// true when the card is flagged one-per-deck and a copy is already in the
// deck, matched by card id.
//
// This is a pure recomputation over the current deck snapshot. Callers must
// re-invoke it after every deck mutation rather than caching the result; the
// stale-cache variant failed to un-dim cards after removal.
func ShouldDimCard(def domain.CardDefinition, cards []domain.DeckCard) bool {
	if !def.OnePerDeck {
		return false
	}
	return domain.Contains(cards, def.Type, def.ID)
}

// DimmedCardIDs returns the ids of all one-per-deck cards in defs that are
// currently present in the deck. Used by the card-removal response so clients
// rebuild dim state from scratch.
func DimmedCardIDs(defs []domain.CardDefinition, cards []domain.DeckCard) []string {
	var ids []string
	for _, def := range defs {
		if ShouldDimCard(def, cards) {
			ids = append(ids, def.ID)
		}
	}
	return ids
}
