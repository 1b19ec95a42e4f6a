// Package decks orchestrates deck mutations: load the current card list, run
// the composition validator, and persist the result. It is the only writer of
// deck state; handlers never touch the store for card mutations directly.
package decks

import (
	"context"
	"log/slog"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/deckbase/deckbase/internal/core/rules"
	"github.com/deckbase/deckbase/internal/shell/store"
)

// =============================================================================
// Service
// =============================================================================

// Service owns the load-validate-persist sequence for decks.
type Service struct {
	store  store.Store
	lookup rules.CardLookup
	logger *slog.Logger
	locks  *keyedMutex
}

// NewService creates a deck service. lookup feeds the composition validator
// and may be nil in tests that exercise no catalog-dependent rule.
func NewService(s store.Store, lookup rules.CardLookup, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		lookup: lookup,
		logger: logger,
		locks:  newKeyedMutex(),
	}
}

// =============================================================================
// Deck CRUD
// =============================================================================

// Create persists a new empty deck.
func (s *Service) Create(ctx context.Context, name string, ownerID int) (*domain.Deck, error) {
	deck := domain.NewDeck(name, ownerID)
	if err := s.store.CreateDeck(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// Get loads a deck with its card list.
func (s *Service) Get(ctx context.Context, deckID string) (*domain.Deck, error) {
	return s.store.GetDeck(ctx, deckID)
}

// List returns the owner's decks.
func (s *Service) List(ctx context.Context, ownerID int, opts store.ListOptions) ([]domain.Deck, error) {
	return s.store.ListDecksByOwner(ctx, ownerID, opts)
}

// Rename updates a deck's name and slug.
func (s *Service) Rename(ctx context.Context, deck *domain.Deck, name string) error {
	deck.Name = name
	deck.Slug = domain.Slugify(name)
	return s.store.UpdateDeck(ctx, deck)
}

// Delete removes a deck and its cards.
func (s *Service) Delete(ctx context.Context, deckID string) error {
	return s.store.DeleteDeck(ctx, deckID)
}

// =============================================================================
// Card Mutations
// =============================================================================

// AddCard validates and applies one addition. The deck's lock is held across
// load, validation, and persist, and the writes run in one transaction, so
// concurrent additions to the same deck serialize instead of racing past the
// caps on a stale read.
//
// A rule violation comes back as *rules.Violation; the caller surfaces its
// message verbatim.
func (s *Service) AddCard(ctx context.Context, deckID string, t domain.CardType, cardID string, quantity int) (*domain.Deck, error) {
	unlock := s.locks.Lock(deckID)
	defer unlock()

	deck, err := s.store.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	if v := rules.ValidateAddition(deck.Cards, t, cardID, quantity, s.lookup); v != nil {
		s.logger.Debug("addition rejected",
			"deck_id", deckID,
			"card_type", string(t),
			"card_id", cardID,
			"reason", v.Message,
		)
		return nil, v
	}

	deck.Apply(t, cardID, quantity)

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.ReplaceDeckCards(ctx, deck.ID, deck.Cards); err != nil {
			return err
		}
		return tx.UpdateDeck(ctx, deck)
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// RemoveCard subtracts copies of a card, dropping the entry at zero. Removal
// has no composition rules to check; it still serializes per deck so a
// concurrent AddCard sees a settled card list.
func (s *Service) RemoveCard(ctx context.Context, deckID string, t domain.CardType, cardID string, quantity int) (*domain.Deck, error) {
	unlock := s.locks.Lock(deckID)
	defer unlock()

	deck, err := s.store.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	deck.Remove(t, cardID, quantity)

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.ReplaceDeckCards(ctx, deck.ID, deck.Cards); err != nil {
			return err
		}
		return tx.UpdateDeck(ctx, deck)
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}
