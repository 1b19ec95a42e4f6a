package auth

import "github.com/deckbase/deckbase/internal/core/domain"

// =============================================================================
// Deck Authorization
// =============================================================================

// CanViewDeck checks if the user can view a deck. Decks are only visible to
// their owner; the catalog itself is public and not gated here.
func CanViewDeck(ctx Context, deck domain.Deck) bool {
	return ctx.Authenticated && ctx.UserID == deck.OwnerID
}

// CanModifyDeck checks if the user can mutate a deck (rename, add or remove
// cards, delete). Guests are read-only even for decks they somehow own.
func CanModifyDeck(ctx Context, deck domain.Deck) bool {
	if !ctx.Authenticated || ctx.Role == RoleGuest {
		return false
	}
	return ctx.UserID == deck.OwnerID
}

// CanCreateDeck checks if the user can create decks at all.
func CanCreateDeck(ctx Context) bool {
	return ctx.Authenticated && ctx.Role != RoleGuest
}
