package api

import (
	"time"

	"github.com/deckbase/deckbase/internal/core/domain"
)

// =============================================================================
// Request Types
// =============================================================================

// CreateDeckRequest is the request body for creating a deck.
type CreateDeckRequest struct {
	Name string `json:"name"`
}

// UpdateDeckRequest is the request body for renaming a deck.
type UpdateDeckRequest struct {
	Name string `json:"name"`
}

// CardRequest is the request body for adding or removing a deck card.
type CardRequest struct {
	CardType string `json:"cardType"`
	CardID   string `json:"cardId"`
	Quantity *int   `json:"quantity,omitempty"`

	// SelectedAlternateImage is accepted for client compatibility; the
	// server does not act on it.
	SelectedAlternateImage string `json:"selectedAlternateImage,omitempty"`
}

// EffectiveQuantity applies the default of one for an omitted quantity.
func (r CardRequest) EffectiveQuantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// =============================================================================
// Response Types
// =============================================================================

// DeckResponse is the response for deck operations.
type DeckResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	Cards     []DeckCardResponse `json:"cards"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// DeckCardResponse is one deck line item in a response.
type DeckCardResponse struct {
	Type     string `json:"type"`
	CardID   string `json:"card_id"`
	Quantity int    `json:"quantity"`
}

// ListDecksResponse is the response for listing decks.
type ListDecksResponse struct {
	Decks  []DeckResponse `json:"decks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// MutateCardResponse is the response for card addition and removal. Error
// carries the validator message verbatim when Success is false.
type MutateCardResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Deck    *DeckResponse `json:"deck,omitempty"`

	// DimmedCardIDs lists every one-per-deck card currently in the deck so
	// clients rebuild dim state from this snapshot instead of patching it.
	DimmedCardIDs []string `json:"dimmedCardIds"`
}

// CardResponse is one catalog card in a response.
type CardResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	OnePerDeck bool   `json:"one_per_deck"`
	Character  string `json:"character,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	SetID      string `json:"set_id,omitempty"`
}

// ListCardsResponse is the response for catalog browsing.
type ListCardsResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int            `json:"total"`
}

// SetResponse is one card set in a response.
type SetResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListSetsResponse is the response for listing card sets.
type ListSetsResponse struct {
	Sets []SetResponse `json:"sets"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// =============================================================================
// Conversions
// =============================================================================

func deckToResponse(d *domain.Deck) *DeckResponse {
	resp := &DeckResponse{
		ID:        d.ID,
		Name:      d.Name,
		Slug:      d.Slug,
		Cards:     make([]DeckCardResponse, 0, len(d.Cards)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for _, dc := range d.Cards {
		resp.Cards = append(resp.Cards, DeckCardResponse{
			Type:     string(dc.Type),
			CardID:   dc.CardID,
			Quantity: dc.Quantity,
		})
	}
	return resp
}

func cardToResponse(c domain.CardDefinition) CardResponse {
	return CardResponse{
		ID:         c.ID,
		Name:       c.Name,
		Type:       string(c.Type),
		Text:       c.Text,
		OnePerDeck: c.OnePerDeck,
		Character:  c.Character,
		ImageURL:   c.ImageURL,
		SetID:      c.SetID,
	}
}
