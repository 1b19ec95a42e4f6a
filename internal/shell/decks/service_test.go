package decks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/deckbase/deckbase/internal/core/rules"
	"github.com/deckbase/deckbase/internal/shell/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupService(t *testing.T, lookup rules.CardLookup) (*Service, int) {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ownerID, err := s.ResolveUser(context.Background(), "user_test")
	require.NoError(t, err)

	return NewService(s, lookup, nil), ownerID
}

func opdLookup(t domain.CardType, id string) (*domain.CardDefinition, bool) {
	if id == "spear-throw" {
		return &domain.CardDefinition{ID: id, Type: t, OnePerDeck: true}, true
	}
	return nil, false
}

// =============================================================================
// CRUD Tests
// =============================================================================

func TestServiceCreateAndGet(t *testing.T) {
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	got, err := svc.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, deck.ID, got.ID)
	assert.Empty(t, got.Cards)
}

func TestServiceRename(t *testing.T) {
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	require.NoError(t, svc.Rename(ctx, deck, "Anti Mission"))

	got, err := svc.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anti Mission", got.Name)
	assert.Equal(t, "anti-mission", got.Slug)
}

func TestServiceDelete(t *testing.T) {
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, deck.ID))

	_, err = svc.Get(ctx, deck.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// =============================================================================
// AddCard Tests
// =============================================================================

func TestAddCard_PersistsAddition(t *testing.T) {
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	updated, err := svc.AddCard(ctx, deck.ID, domain.CardTypeCharacter, "leonidas", 1)
	require.NoError(t, err)
	require.Len(t, updated.Cards, 1)

	got, err := svc.Get(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "leonidas", got.Cards[0].CardID)
}

func TestAddCard_RuleViolationLeavesDeckUntouched(t *testing.T) {
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeCharacter, "leonidas", 1)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeCharacter, "leonidas", 1)
	var violation *rules.Violation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "Unable to add character, may only have 1 of each character.", violation.Message)

	got, err := svc.Get(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, 1, got.Cards[0].Quantity)
}

func TestAddCard_OnePerDeckUsesLookup(t *testing.T) {
	svc, owner := setupService(t, opdLookup)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeSpecial, "spear-throw", 1)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeSpecial, "spear-throw", 1)
	var violation *rules.Violation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "Card can only have 1 copy per deck (would have 2)", violation.Message)
}

func TestAddCard_UnknownDeck(t *testing.T) {
	svc, _ := setupService(t, nil)

	_, err := svc.AddCard(context.Background(), "deck_missing", domain.CardTypeEvent, "ambush", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddCard_ConcurrentAdditionsRespectMissionCap(t *testing.T) {
	// Seven goroutines each add one mission card; an eighth copy must be
	// rejected no matter the interleaving.
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Race", owner)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AddCard(ctx, deck.ID, domain.CardTypeMission, "hold-the-gates", 1)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			var violation *rules.Violation
			require.True(t, errors.As(err, &violation))
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	got, err := svc.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, domain.QuantitySum(got.Cards, domain.CardTypeMission))
}

// =============================================================================
// RemoveCard Tests
// =============================================================================

func TestRemoveCard_DropAtZeroAndReAdd(t *testing.T) {
	// A one-per-deck card removed to zero must be addable again — the
	// round-trip behind the dimming regression.
	svc, owner := setupService(t, opdLookup)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeSpecial, "spear-throw", 1)
	require.NoError(t, err)

	updated, err := svc.RemoveCard(ctx, deck.ID, domain.CardTypeSpecial, "spear-throw", 1)
	require.NoError(t, err)
	assert.Empty(t, updated.Cards)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeSpecial, "spear-throw", 1)
	assert.NoError(t, err)
}

func TestRemoveCard_PartialDecrement(t *testing.T) {
	svc, owner := setupService(t, nil)
	ctx := context.Background()

	deck, err := svc.Create(ctx, "Hot Gates", owner)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, deck.ID, domain.CardTypeMission, "hold-the-gates", 3)
	require.NoError(t, err)

	updated, err := svc.RemoveCard(ctx, deck.ID, domain.CardTypeMission, "hold-the-gates", 1)
	require.NoError(t, err)
	require.Len(t, updated.Cards, 1)
	assert.Equal(t, 2, updated.Cards[0].Quantity)
}

// =============================================================================
// Export Tests
// =============================================================================

func TestExportText(t *testing.T) {
	deck := domain.NewDeck("Hot Gates", 1)
	deck.Apply(domain.CardTypeMission, "rally-allies", 2)
	deck.Apply(domain.CardTypeMission, "hold-the-gates", 3)
	deck.Apply(domain.CardTypeCharacter, "leonidas", 1)

	out := ExportText(deck)

	assert.Contains(t, out, "# Hot Gates")
	assert.Contains(t, out, "## character\n1x leonidas")
	assert.Contains(t, out, "## mission\n3x hold-the-gates\n2x rally-allies")
}
