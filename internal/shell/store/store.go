package store

import (
	"context"

	"github.com/deckbase/deckbase/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for deckbase entities.
type Store interface {
	// User resolution (upsert user from the gateway reference ID)
	ResolveUser(ctx context.Context, referenceID string) (int, error)

	// Deck operations
	CreateDeck(ctx context.Context, deck *domain.Deck) error
	GetDeck(ctx context.Context, id string) (*domain.Deck, error)
	GetDeckBySlug(ctx context.Context, ownerID int, slug string) (*domain.Deck, error)
	UpdateDeck(ctx context.Context, deck *domain.Deck) error
	DeleteDeck(ctx context.Context, id string) error
	ListDecksByOwner(ctx context.Context, ownerID int, opts ListOptions) ([]domain.Deck, error)

	// Deck card operations. ReplaceDeckCards rewrites the full card list for a
	// deck; card mutations always persist the whole validated list so the
	// stored state can never hold a partially applied addition.
	GetDeckCards(ctx context.Context, deckID string) ([]domain.DeckCard, error)
	ReplaceDeckCards(ctx context.Context, deckID string, cards []domain.DeckCard) error

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination options.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:  100,
		Offset: 0,
	}
}

// Normalize ensures list options have valid values.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 100
	}
	if o.Limit > 1000 {
		o.Limit = 1000
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
