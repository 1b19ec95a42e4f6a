// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deckbase/deckbase/internal/core/auth"
)

// =============================================================================
// User Resolver
// =============================================================================

// UserResolver maps a gateway reference ID to the local user primary key,
// creating the user row on first sight.
type UserResolver interface {
	ResolveUser(ctx context.Context, referenceID string) (int, error)
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	// SharedSecret, when set, must match the X-Gateway-Secret header for the
	// identity headers to be trusted.
	SharedSecret string

	UserResolver UserResolver
	Logger       *slog.Logger
}

// AuthMiddleware extracts identity from gateway headers and resolves the
// local user. Every request passes through it; it never rejects, it only
// attaches context. Route groups that need identity stack RequireAuth on top.
type AuthMiddleware struct {
	cfg AuthConfig
}

// NewAuthMiddleware creates an auth middleware.
func NewAuthMiddleware(cfg AuthConfig) *AuthMiddleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AuthMiddleware{cfg: cfg}
}

// Handler wraps next with identity extraction.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac := auth.ExtractFromRequest(r)

		if m.cfg.SharedSecret != "" && r.Header.Get(auth.HeaderGatewaySecret) != m.cfg.SharedSecret {
			if ac.Authenticated {
				m.cfg.Logger.Warn("identity headers with bad gateway secret",
					"reference_id", ac.ReferenceID,
					"path", r.URL.Path,
				)
			}
			ac = auth.Context{Role: auth.RoleGuest}
		}

		if ac.Authenticated && m.cfg.UserResolver != nil {
			userID, err := m.cfg.UserResolver.ResolveUser(r.Context(), ac.ReferenceID)
			if err != nil {
				m.cfg.Logger.Error("failed to resolve user",
					"reference_id", ac.ReferenceID,
					"error", err,
				)
				ac = auth.Context{Role: auth.RoleGuest}
			} else {
				ac.UserID = userID
			}
		}

		next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), ac)))
	})
}

// =============================================================================
// Require Auth
// =============================================================================

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := auth.FromContext(r.Context())
			if !ac.Authenticated {
				logger.Debug("unauthenticated request rejected", "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "authentication required",
					"code":  "UNAUTHENTICATED",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
