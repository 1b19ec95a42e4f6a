package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/deckbase/deckbase/internal/core/auth"
	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/deckbase/deckbase/internal/core/validation"
	"github.com/deckbase/deckbase/internal/shell/deckimage"
	"github.com/deckbase/deckbase/internal/shell/decks"
	"github.com/deckbase/deckbase/internal/shell/store"
	"github.com/go-chi/chi/v5"
)

// =============================================================================
// Deck CRUD Handlers
// =============================================================================

func (h *Handler) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())
	if !auth.CanCreateDeck(ac) {
		h.writeError(w, http.StatusForbidden, "guests cannot create decks", "FORBIDDEN")
		return
	}

	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_REQUEST")
		return
	}

	if field, msg := validation.ValidateCreateDeckFields(req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "VALIDATION_ERROR")
		return
	}

	deck, err := h.decks.Create(r.Context(), req.Name, ac.UserID)
	if err != nil {
		h.logger.Error("failed to create deck", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create deck", "INTERNAL_ERROR")
		return
	}

	h.logger.Info("deck created", "deck_id", deck.ID, "owner_id", ac.UserID)
	h.writeJSON(w, http.StatusCreated, deckToResponse(deck))
}

func (h *Handler) handleListDecks(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())

	opts := store.ListOptions{
		Limit:  parseIntParam(r, "limit", 0),
		Offset: parseIntParam(r, "offset", 0),
	}
	opts = opts.Normalize()

	list, err := h.decks.List(r.Context(), ac.UserID, opts)
	if err != nil {
		h.logger.Error("failed to list decks", "owner_id", ac.UserID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list decks", "INTERNAL_ERROR")
		return
	}

	resp := ListDecksResponse{
		Decks:  make([]DeckResponse, 0, len(list)),
		Total:  len(list),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for i := range list {
		resp.Decks = append(resp.Decks, *deckToResponse(&list[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForView(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, deckToResponse(deck))
}

func (h *Handler) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForModify(w, r)
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_REQUEST")
		return
	}
	if field, msg := validation.ValidateCreateDeckFields(req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "VALIDATION_ERROR")
		return
	}

	if err := h.decks.Rename(r.Context(), deck, req.Name); err != nil {
		h.logger.Error("failed to rename deck", "deck_id", deck.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update deck", "INTERNAL_ERROR")
		return
	}
	h.writeJSON(w, http.StatusOK, deckToResponse(deck))
}

func (h *Handler) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForModify(w, r)
	if !ok {
		return
	}

	if err := h.decks.Delete(r.Context(), deck.ID); err != nil {
		h.logger.Error("failed to delete deck", "deck_id", deck.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete deck", "INTERNAL_ERROR")
		return
	}
	h.logger.Info("deck deleted", "deck_id", deck.ID)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Export Handlers
// =============================================================================

func (h *Handler) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForView(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(decks.ExportText(deck)))
}

func (h *Handler) handleDeckQR(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.loadDeckForView(w, r)
	if !ok {
		return
	}

	png, err := deckimage.ShareQRPNG(h.shareURL(deck), 400)
	if err != nil {
		h.logger.Error("failed to render share QR", "deck_id", deck.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to render QR code", "INTERNAL_ERROR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// =============================================================================
// Helpers
// =============================================================================

// loadDeckForView loads the deck from the path and checks view access. On
// failure it writes the response and returns ok=false.
func (h *Handler) loadDeckForView(w http.ResponseWriter, r *http.Request) (*domain.Deck, bool) {
	return h.loadDeck(w, r, auth.CanViewDeck)
}

// loadDeckForModify is loadDeckForView with the mutation access check.
func (h *Handler) loadDeckForModify(w http.ResponseWriter, r *http.Request) (*domain.Deck, bool) {
	return h.loadDeck(w, r, auth.CanModifyDeck)
}

func (h *Handler) loadDeck(w http.ResponseWriter, r *http.Request, allowed func(auth.Context, domain.Deck) bool) (*domain.Deck, bool) {
	deckID := chi.URLParam(r, "id")

	deck, err := h.decks.Get(r.Context(), deckID)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "deck not found", "NOT_FOUND")
			return nil, false
		}
		h.logger.Error("failed to load deck", "deck_id", deckID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load deck", "INTERNAL_ERROR")
		return nil, false
	}

	if !allowed(auth.FromContext(r.Context()), *deck) {
		h.writeError(w, http.StatusForbidden, "you do not have access to this deck", "FORBIDDEN")
		return nil, false
	}
	return deck, true
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
