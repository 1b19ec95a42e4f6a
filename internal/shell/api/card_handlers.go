package api

import (
	"encoding/json"
	"errors"
	"image"
	"net/http"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/deckbase/deckbase/internal/core/rules"
	"github.com/deckbase/deckbase/internal/core/validation"
	"github.com/deckbase/deckbase/internal/shell/deckimage"
)

// =============================================================================
// Card Mutation Handlers
// =============================================================================

// handleAddCard adds copies of a card to a deck. Composition rule violations
// come back as 400 with success=false and the rule message verbatim; the deck
// is untouched in that case.
func (h *Handler) handleAddCard(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForModify(w, r)
	if !ok {
		return
	}

	req, t, ok := h.decodeCardRequest(w, r, deck)
	if !ok {
		return
	}

	updated, err := h.decks.AddCard(r.Context(), deck.ID, t, req.CardID, req.EffectiveQuantity())
	if err != nil {
		var v *rules.Violation
		if errors.As(err, &v) {
			h.writeJSON(w, http.StatusBadRequest, MutateCardResponse{
				Success:       false,
				Error:         v.Message,
				DimmedCardIDs: h.dimmedIDs(deck.Cards),
			})
			return
		}
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "deck not found", "NOT_FOUND")
			return
		}
		h.logger.Error("failed to add card", "deck_id", deck.ID, "card_id", req.CardID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to add card", "INTERNAL_ERROR")
		return
	}

	h.writeJSON(w, http.StatusOK, MutateCardResponse{
		Success:       true,
		Deck:          deckToResponse(updated),
		DimmedCardIDs: h.dimmedIDs(updated.Cards),
	})
}

// handleRemoveCard subtracts copies of a card. The response carries the full
// recomputed dim list so clients un-dim freed one-per-deck cards.
func (h *Handler) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForModify(w, r)
	if !ok {
		return
	}

	req, t, ok := h.decodeCardRequest(w, r, deck)
	if !ok {
		return
	}

	updated, err := h.decks.RemoveCard(r.Context(), deck.ID, t, req.CardID, req.EffectiveQuantity())
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "deck not found", "NOT_FOUND")
			return
		}
		h.logger.Error("failed to remove card", "deck_id", deck.ID, "card_id", req.CardID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to remove card", "INTERNAL_ERROR")
		return
	}

	h.writeJSON(w, http.StatusOK, MutateCardResponse{
		Success:       true,
		Deck:          deckToResponse(updated),
		DimmedCardIDs: h.dimmedIDs(updated.Cards),
	})
}

// decodeCardRequest parses and validates the mutation body. Failures are
// written as 400 success=false envelopes so the client handles malformed
// input and rule violations through one path.
func (h *Handler) decodeCardRequest(w http.ResponseWriter, r *http.Request, deck *domain.Deck) (CardRequest, domain.CardType, bool) {
	var req CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, MutateCardResponse{
			Success:       false,
			Error:         "invalid request body",
			DimmedCardIDs: h.dimmedIDs(deck.Cards),
		})
		return CardRequest{}, "", false
	}

	if field, msg := validation.ValidateAddCardFields(req.CardType, req.CardID, req.EffectiveQuantity()); field != "" {
		h.writeJSON(w, http.StatusBadRequest, MutateCardResponse{
			Success:       false,
			Error:         msg,
			DimmedCardIDs: h.dimmedIDs(deck.Cards),
		})
		return CardRequest{}, "", false
	}

	t, err := domain.ParseCardType(req.CardType)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, MutateCardResponse{
			Success:       false,
			Error:         "unknown card type: " + req.CardType,
			DimmedCardIDs: h.dimmedIDs(deck.Cards),
		})
		return CardRequest{}, "", false
	}
	return req, t, true
}

// dimmedIDs recomputes the one-per-deck dim list from the deck snapshot.
func (h *Handler) dimmedIDs(cards []domain.DeckCard) []string {
	if h.catalog == nil {
		return nil
	}
	return rules.DimmedCardIDs(h.catalog.Cards(), cards)
}

// =============================================================================
// Deck Sheet Handler
// =============================================================================

// handleDeckSheet composes a shareable deck image: every card image in the
// deck plus a share QR. Cards without a catalog image, and images that fail
// to fetch, are skipped rather than failing the sheet.
func (h *Handler) handleDeckSheet(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForView(w, r)
	if !ok {
		return
	}

	images := h.fetchDeckImages(r, deck)

	qr, err := deckimage.ShareQRImage(h.shareURL(deck), 400)
	if err != nil {
		h.logger.Error("failed to render share QR", "deck_id", deck.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to compose deck sheet", "INTERNAL_ERROR")
		return
	}

	png, err := deckimage.EncodePNG(deckimage.ComposeSheet(images, qr))
	if err != nil {
		h.logger.Error("failed to encode deck sheet", "deck_id", deck.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to compose deck sheet", "INTERNAL_ERROR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// fetchDeckImages loads one image per deck line item, in card list order.
// Failed or missing images yield nil entries, which ComposeSheet skips.
func (h *Handler) fetchDeckImages(r *http.Request, deck *domain.Deck) []image.Image {
	images := make([]image.Image, 0, len(deck.Cards))
	for _, dc := range deck.Cards {
		def, ok := h.catalog.Lookup(dc.Type, dc.CardID)
		if !ok || def.ImageURL == "" {
			images = append(images, nil)
			continue
		}
		img, err := h.images.Fetch(r.Context(), def.ImageURL)
		if err != nil {
			h.logger.Warn("skipping card image",
				"deck_id", deck.ID,
				"card_id", dc.CardID,
				"error", err,
			)
			images = append(images, nil)
			continue
		}
		images = append(images, img)
	}
	return images
}

// shareURL builds the public URL a share QR points at.
func (h *Handler) shareURL(deck *domain.Deck) string {
	base := h.baseURL
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/decks/" + deck.ID
}
