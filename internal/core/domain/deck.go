package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Deck Card
// =============================================================================

// DeckCard is one line item in a deck: a card reference with a copy count.
type DeckCard struct {
	Type     CardType `json:"type"`
	CardID   string   `json:"card_id"`
	Quantity int      `json:"quantity"`
}

// =============================================================================
// Deck
// =============================================================================

// Deck is a user-owned collection of deck cards. Ordering of Cards carries no
// meaning; entries are looked up by type and card id.
type Deck struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	OwnerID   int        `json:"-"`
	Cards     []DeckCard `json:"cards"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewDeck creates an empty deck owned by the given user.
func NewDeck(name string, ownerID int) *Deck {
	now := time.Now().UTC()
	return &Deck{
		ID:        "deck_" + uuid.New().String()[:8],
		Name:      name,
		Slug:      Slugify(name),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Find returns the deck card matching type and card id, or nil.
func (d *Deck) Find(t CardType, cardID string) *DeckCard {
	for i := range d.Cards {
		if d.Cards[i].Type == t && d.Cards[i].CardID == cardID {
			return &d.Cards[i]
		}
	}
	return nil
}

// Apply adds quantity copies of a card, incrementing an existing entry in
// place or appending a new one. Callers are expected to have validated the
// addition first.
func (d *Deck) Apply(t CardType, cardID string, quantity int) {
	if dc := d.Find(t, cardID); dc != nil {
		dc.Quantity += quantity
	} else {
		d.Cards = append(d.Cards, DeckCard{Type: t, CardID: cardID, Quantity: quantity})
	}
	d.UpdatedAt = time.Now().UTC()
}

// Remove subtracts quantity copies of a card, dropping the entry when its
// count reaches zero. Removing a card that is not present is a no-op.
func (d *Deck) Remove(t CardType, cardID string, quantity int) {
	for i := range d.Cards {
		if d.Cards[i].Type != t || d.Cards[i].CardID != cardID {
			continue
		}
		d.Cards[i].Quantity -= quantity
		if d.Cards[i].Quantity <= 0 {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
		}
		d.UpdatedAt = time.Now().UTC()
		return
	}
}

// =============================================================================
// Counting Helpers (Pure)
// =============================================================================

// DistinctCount returns the number of distinct cards of the given type.
func DistinctCount(cards []DeckCard, t CardType) int {
	n := 0
	for _, dc := range cards {
		if dc.Type == t {
			n++
		}
	}
	return n
}

// QuantitySum returns the summed quantity across all cards of the given type.
func QuantitySum(cards []DeckCard, t CardType) int {
	n := 0
	for _, dc := range cards {
		if dc.Type == t {
			n += dc.Quantity
		}
	}
	return n
}

// Contains reports whether any entry matches the given type and card id,
// regardless of quantity.
func Contains(cards []DeckCard, t CardType, cardID string) bool {
	for _, dc := range cards {
		if dc.Type == t && dc.CardID == cardID {
			return true
		}
	}
	return false
}

// QuantityOf returns the current quantity of the given card, or zero.
func QuantityOf(cards []DeckCard, t CardType, cardID string) int {
	for _, dc := range cards {
		if dc.Type == t && dc.CardID == cardID {
			return dc.Quantity
		}
	}
	return 0
}
