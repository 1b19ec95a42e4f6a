// Package catalog loads and serves the read-only card catalog. Cards are
// loaded once at startup from CSV set files named by a YAML manifest; after
// loading the catalog is immutable, so lookups are safe for concurrent use
// without locking.
package catalog

import (
	"strings"

	"github.com/deckbase/deckbase/internal/core/domain"
)

// =============================================================================
// Catalog
// =============================================================================

// Set describes one card set in the catalog.
type Set struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	File string `json:"-" yaml:"file"`
}

// Catalog is the in-memory card catalog.
type Catalog struct {
	sets  []Set
	cards []domain.CardDefinition
	byKey map[string]*domain.CardDefinition
}

// New builds a catalog from loaded sets and cards.
func New(sets []Set, cards []domain.CardDefinition) *Catalog {
	c := &Catalog{
		sets:  sets,
		cards: cards,
		byKey: make(map[string]*domain.CardDefinition, len(cards)),
	}
	for i := range c.cards {
		c.byKey[cardKey(c.cards[i].Type, c.cards[i].ID)] = &c.cards[i]
	}
	return c
}

func cardKey(t domain.CardType, id string) string {
	return string(t) + "/" + id
}

// Lookup fetches a card definition by type and id. It satisfies
// rules.CardLookup, keeping the validator free of catalog plumbing.
func (c *Catalog) Lookup(t domain.CardType, id string) (*domain.CardDefinition, bool) {
	def, ok := c.byKey[cardKey(t, id)]
	return def, ok
}

// Sets returns the loaded card sets.
func (c *Catalog) Sets() []Set {
	return c.sets
}

// Cards returns every card definition in the catalog.
func (c *Catalog) Cards() []domain.CardDefinition {
	return c.cards
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// =============================================================================
// Filtering
// =============================================================================

// FilterOptions selects a subset of the catalog. Zero values mean "no
// constraint" for each field.
type FilterOptions struct {
	Types      []domain.CardType
	SetIDs     []string
	Character  string
	OnePerDeck *bool
	FreeWords  string
}

// Filter returns all cards matching the options. Free words match
// case-insensitively against name and rules text; every word must match.
func (c *Catalog) Filter(opt FilterOptions) []domain.CardDefinition {
	var out []domain.CardDefinition
	words := strings.Fields(strings.ToLower(opt.FreeWords))

	for _, card := range c.cards {
		if len(opt.Types) > 0 && !typeIn(card.Type, opt.Types) {
			continue
		}
		if len(opt.SetIDs) > 0 && !stringIn(card.SetID, opt.SetIDs) {
			continue
		}
		if opt.Character != "" && !card.ScopedTo(opt.Character) {
			continue
		}
		if opt.OnePerDeck != nil && card.OnePerDeck != *opt.OnePerDeck {
			continue
		}
		if len(words) > 0 && !matchesWords(card, words) {
			continue
		}
		out = append(out, card)
	}
	return out
}

func typeIn(t domain.CardType, types []domain.CardType) bool {
	for _, cand := range types {
		if t == cand {
			return true
		}
	}
	return false
}

func stringIn(s string, candidates []string) bool {
	for _, cand := range candidates {
		if s == cand {
			return true
		}
	}
	return false
}

func matchesWords(card domain.CardDefinition, words []string) bool {
	hay := strings.ToLower(card.Name + " " + card.Text)
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}
