package api

import (
	"net/http"
	"strconv"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/deckbase/deckbase/internal/shell/catalog"
	"github.com/go-chi/chi/v5"
)

// =============================================================================
// Catalog Handlers
// =============================================================================

// handleListCards browses the catalog. Query parameters: type (repeatable),
// set (repeatable), character, one_per_deck, q (free-word search).
func (h *Handler) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opt := catalog.FilterOptions{
		SetIDs:    q["set"],
		Character: q.Get("character"),
		FreeWords: q.Get("q"),
	}

	for _, raw := range q["type"] {
		t, err := domain.ParseCardType(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "unknown card type: "+raw, "VALIDATION_ERROR")
			return
		}
		opt.Types = append(opt.Types, t)
	}

	if raw := q.Get("one_per_deck"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "one_per_deck must be a boolean", "VALIDATION_ERROR")
			return
		}
		opt.OnePerDeck = &v
	}

	cards := h.catalog.Filter(opt)

	resp := ListCardsResponse{
		Cards: make([]CardResponse, 0, len(cards)),
		Total: len(cards),
	}
	for _, c := range cards {
		resp.Cards = append(resp.Cards, cardToResponse(c))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	t, err := domain.ParseCardType(chi.URLParam(r, "type"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unknown card type: "+chi.URLParam(r, "type"), "VALIDATION_ERROR")
		return
	}

	def, ok := h.catalog.Lookup(t, chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, "card not found", "NOT_FOUND")
		return
	}
	h.writeJSON(w, http.StatusOK, cardToResponse(*def))
}

func (h *Handler) handleListSets(w http.ResponseWriter, r *http.Request) {
	sets := h.catalog.Sets()

	resp := ListSetsResponse{Sets: make([]SetResponse, 0, len(sets))}
	for _, s := range sets {
		resp.Sets = append(resp.Sets, SetResponse{ID: s.ID, Name: s.Name})
	}
	h.writeJSON(w, http.StatusOK, resp)
}
