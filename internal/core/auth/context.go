// Package auth provides authentication context and authorization functions.
// Identity arrives on gateway-injected headers; this package only extracts
// and interprets it, it never talks to a user store itself.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// =============================================================================
// Context Key
// =============================================================================

type contextKey string

const authContextKey contextKey = "auth"

// =============================================================================
// Types
// =============================================================================

// Role describes what a caller may do with decks.
type Role string

const (
	// RolePlayer can create and modify their own decks.
	RolePlayer Role = "player"

	// RoleGuest can browse the catalog and view decks but never mutate them.
	RoleGuest Role = "guest"
)

// Context is the authentication context for a request, extracted from
// gateway headers and stored in the request context.
type Context struct {
	// UserID is the local integer PK from the users table, resolved by the
	// auth middleware.
	UserID int

	// ReferenceID is the gateway's user ID string (from X-User-ID).
	ReferenceID string

	// Role is the caller's role (from X-User-Role, defaulting to player).
	Role Role

	// Authenticated indicates whether the request carried an identity.
	Authenticated bool
}

// =============================================================================
// Header Constants
// =============================================================================

const (
	// HeaderUserID carries the authenticated user's gateway ID.
	HeaderUserID = "X-User-ID"

	// HeaderUserRole carries the caller's role.
	HeaderUserRole = "X-User-Role"

	// HeaderGatewaySecret optionally authenticates the gateway itself.
	HeaderGatewaySecret = "X-Gateway-Secret"
)

// =============================================================================
// Extraction
// =============================================================================

// ExtractFromRequest builds an auth context from gateway headers. A request
// without an X-User-ID header is unauthenticated.
func ExtractFromRequest(r *http.Request) Context {
	refID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if refID == "" {
		return Context{Role: RoleGuest}
	}

	role := RolePlayer
	if strings.EqualFold(r.Header.Get(HeaderUserRole), string(RoleGuest)) {
		role = RoleGuest
	}

	return Context{
		ReferenceID:   refID,
		Role:          role,
		Authenticated: true,
	}
}

// =============================================================================
// Request Context Storage
// =============================================================================

// WithContext stores the auth context in a request context.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// FromContext retrieves the auth context, or a zero (unauthenticated) value.
func FromContext(ctx context.Context) Context {
	if ac, ok := ctx.Value(authContextKey).(Context); ok {
		return ac
	}
	return Context{Role: RoleGuest}
}
