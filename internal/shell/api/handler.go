// Package api provides HTTP handlers for the deckbase API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/deckbase/deckbase/internal/shell/api/middleware"
	"github.com/deckbase/deckbase/internal/shell/api/openapi"
	"github.com/deckbase/deckbase/internal/shell/api/resources"
	"github.com/deckbase/deckbase/internal/shell/catalog"
	"github.com/deckbase/deckbase/internal/shell/deckimage"
	"github.com/deckbase/deckbase/internal/shell/decks"
	"github.com/deckbase/deckbase/internal/shell/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/manyminds/api2go"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API.
type Handler struct {
	store   store.Store
	catalog *catalog.Catalog
	decks   *decks.Service
	images  deckimage.ImageSource
	logger  *slog.Logger

	// baseURL is the public URL prefix encoded into share QR codes.
	baseURL string

	// sharedSecret optionally validates the gateway secret header.
	sharedSecret string
}

// Config holds configuration for the API handler.
type Config struct {
	Store        store.Store
	Catalog      *catalog.Catalog
	Decks        *decks.Service
	Images       deckimage.ImageSource
	Logger       *slog.Logger
	BaseURL      string
	SharedSecret string
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	images := cfg.Images
	if images == nil {
		images = deckimage.NewHTTPImageSource()
	}
	return &Handler{
		store:        cfg.Store,
		catalog:      cfg.Catalog,
		decks:        cfg.Decks,
		images:       images,
		logger:       l,
		baseURL:      cfg.BaseURL,
		sharedSecret: cfg.SharedSecret,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(h.requestIDHeader)

	authMW := middleware.NewAuthMiddleware(middleware.AuthConfig{
		SharedSecret: h.sharedSecret,
		UserResolver: h.store,
		Logger:       h.logger,
	})
	r.Use(authMW.Handler)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/openapi.json", h.handleOpenAPI())

		// Catalog routes (public)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.handleListCards)
			r.Get("/{type}/{id}", h.handleGetCard)
		})
		r.Get("/sets", h.handleListSets)

		// Deck routes (authenticated)
		r.Route("/decks", func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.logger))
			r.Post("/", h.handleCreateDeck)
			r.Get("/", h.handleListDecks)
			r.Get("/{id}", h.handleGetDeck)
			r.Put("/{id}", h.handleUpdateDeck)
			r.Delete("/{id}", h.handleDeleteDeck)
			r.Post("/{id}/cards", h.handleAddCard)
			r.Delete("/{id}/cards", h.handleRemoveCard)
			r.Get("/{id}/export", h.handleExportDeck)
			r.Get("/{id}/qr", h.handleDeckQR)
			r.Post("/{id}/sheet", h.handleDeckSheet)
		})
	})

	// Read-only JSON:API mount for the catalog.
	jsonAPI := api2go.NewAPIWithResolver("v1", api2go.NewStaticResolver("/jsonapi"))
	jsonAPI.ContentType = "application/vnd.api+json"
	jsonAPI.AddResource(resources.Card{}, resources.NewCardResource(h.catalog))
	jsonAPI.AddResource(resources.Set{}, resources.NewSetResource(h.catalog))
	r.Mount("/jsonapi", jsonAPI.Handler())

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": "ok",
		"catalog":  "ok",
	}

	if h.catalog == nil || h.catalog.Len() == 0 {
		checks["catalog"] = "empty"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// OpenAPI Handler
// =============================================================================

// handleOpenAPI builds the reflective spec generator once and returns its
// serving handler.
func (h *Handler) handleOpenAPI() http.HandlerFunc {
	gen := openapi.NewGenerator(
		openapi.WithTitle("Deckbase API"),
		openapi.WithVersion("1.0.0"),
		openapi.WithDescription("Card catalog browsing and deck building API"),
		openapi.WithServer("/api/v1"),
	)

	gen.RegisterResource(openapi.ResourceInfo{
		Name:         "cards",
		Model:        CardResponse{},
		SupportsFind: true,
	})
	gen.RegisterResource(openapi.ResourceInfo{
		Name:         "sets",
		Model:        SetResponse{},
		SupportsFind: true,
	})
	gen.RegisterResource(openapi.ResourceInfo{
		Name:           "decks",
		Model:          DeckResponse{},
		SupportsFind:   true,
		SupportsCreate: true,
		SupportsUpdate: true,
		SupportsDelete: true,
	})

	return gen.Handler()
}

// =============================================================================
// Response Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// isNotFound checks if an error is a not found error.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
