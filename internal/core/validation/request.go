// Package validation provides pure validation functions for API handlers.
//
// All functions here are part of the functional core: no I/O, no side
// effects. Handlers call them before touching the store so malformed requests
// never reach rule evaluation or persistence.
package validation

import "github.com/deckbase/deckbase/internal/core/rules"

// =============================================================================
// Field Length Bounds
// =============================================================================

const (
	MaxCardTypeLength = 50
	MaxCardIDLength   = 100
	MaxDeckNameLength = 100
)

// =============================================================================
// Card Addition Request
// =============================================================================

// ValidateAddCardFields validates the fields of a card-addition request.
// Returns the field name and error message if validation fails, or empty
// strings when all fields are valid. Quantity here is the value after the
// default of 1 has been applied for an omitted field.
//
// Example:
//
//	field, msg := validation.ValidateAddCardFields(req.CardType, req.CardID, qty)
//	if field != "" {
//	    // Return 400 Bad Request with msg
//	}
func ValidateAddCardFields(cardType, cardID string, quantity int) (field, message string) {
	if cardType == "" {
		return "cardType", "cardType is required"
	}
	if len(cardType) > MaxCardTypeLength {
		return "cardType", "cardType must be at most 50 characters"
	}
	if cardID == "" {
		return "cardId", "cardId is required"
	}
	if len(cardID) > MaxCardIDLength {
		return "cardId", "cardId must be at most 100 characters"
	}
	if quantity < rules.MinQuantity || quantity > rules.MaxQuantity {
		return "quantity", "quantity must be between 1 and 10"
	}
	return "", ""
}

// =============================================================================
// Deck Requests
// =============================================================================

// ValidateCreateDeckFields validates required fields for deck creation.
func ValidateCreateDeckFields(name string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if len(name) > MaxDeckNameLength {
		return "name", "name must be at most 100 characters"
	}
	return "", ""
}
