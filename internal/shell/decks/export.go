package decks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckbase/deckbase/internal/core/domain"
)

// =============================================================================
// Text Export
// =============================================================================

// ExportText renders a deck as a plain-text list, grouped by card type in
// taxonomy order with deterministic card ordering inside each group.
func ExportText(deck *domain.Deck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", deck.Name)

	byType := make(map[domain.CardType][]domain.DeckCard)
	for _, dc := range deck.Cards {
		byType[dc.Type] = append(byType[dc.Type], dc)
	}

	for _, t := range domain.AllCardTypes {
		group := byType[t]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].CardID < group[j].CardID })

		fmt.Fprintf(&b, "\n## %s\n", strings.ReplaceAll(string(t), "_", " "))
		for _, dc := range group {
			fmt.Fprintf(&b, "%dx %s\n", dc.Quantity, dc.CardID)
		}
	}
	return b.String()
}
