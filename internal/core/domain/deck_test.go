package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck("Hot Gates", 7)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "Hot Gates", d.Name)
	assert.Equal(t, "hot-gates", d.Slug)
	assert.Equal(t, 7, d.OwnerID)
	assert.Empty(t, d.Cards)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestApply_NewEntryAndIncrement(t *testing.T) {
	d := NewDeck("Hot Gates", 1)

	d.Apply(CardTypeMission, "hold-the-gates", 2)
	require.Len(t, d.Cards, 1)
	assert.Equal(t, 2, d.Cards[0].Quantity)

	d.Apply(CardTypeMission, "hold-the-gates", 3)
	require.Len(t, d.Cards, 1)
	assert.Equal(t, 5, d.Cards[0].Quantity)
}

func TestRemove_DecrementAndDrop(t *testing.T) {
	d := NewDeck("Hot Gates", 1)
	d.Apply(CardTypeMission, "hold-the-gates", 3)

	d.Remove(CardTypeMission, "hold-the-gates", 1)
	require.Len(t, d.Cards, 1)
	assert.Equal(t, 2, d.Cards[0].Quantity)

	d.Remove(CardTypeMission, "hold-the-gates", 2)
	assert.Empty(t, d.Cards)
}

func TestRemove_AbsentCardIsNoop(t *testing.T) {
	d := NewDeck("Hot Gates", 1)
	d.Apply(CardTypeEvent, "ambush", 1)

	d.Remove(CardTypeEvent, "last-stand", 1)

	require.Len(t, d.Cards, 1)
}

func TestRemove_OverDecrementDrops(t *testing.T) {
	d := NewDeck("Hot Gates", 1)
	d.Apply(CardTypeEvent, "ambush", 1)

	d.Remove(CardTypeEvent, "ambush", 5)

	assert.Empty(t, d.Cards)
}

func TestCountingHelpers(t *testing.T) {
	cards := []DeckCard{
		{Type: CardTypeCharacter, CardID: "leonidas", Quantity: 1},
		{Type: CardTypeCharacter, CardID: "xena", Quantity: 1},
		{Type: CardTypeMission, CardID: "hold-the-gates", Quantity: 3},
		{Type: CardTypeMission, CardID: "rally-allies", Quantity: 2},
	}

	assert.Equal(t, 2, DistinctCount(cards, CardTypeCharacter))
	assert.Equal(t, 2, DistinctCount(cards, CardTypeMission))
	assert.Equal(t, 0, DistinctCount(cards, CardTypeLocation))
	assert.Equal(t, 5, QuantitySum(cards, CardTypeMission))
	assert.True(t, Contains(cards, CardTypeCharacter, "xena"))
	assert.False(t, Contains(cards, CardTypeCharacter, "hercules"))
	assert.Equal(t, 3, QuantityOf(cards, CardTypeMission, "hold-the-gates"))
	assert.Equal(t, 0, QuantityOf(cards, CardTypeMission, "final-stand"))
}

func TestCountingHelpers_NilCards(t *testing.T) {
	assert.Equal(t, 0, DistinctCount(nil, CardTypeCharacter))
	assert.Equal(t, 0, QuantitySum(nil, CardTypeMission))
	assert.False(t, Contains(nil, CardTypeCharacter, "leonidas"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hot-gates", Slugify("Hot Gates"))
	assert.Equal(t, "anti-7-mission", Slugify("Anti 7-Mission!"))
	assert.Equal(t, "", Slugify("!!!"))
}
