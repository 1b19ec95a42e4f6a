package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFromRequest_Authenticated(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/decks", nil)
	r.Header.Set(HeaderUserID, "user_bc6849d9")

	ac := ExtractFromRequest(r)

	assert.True(t, ac.Authenticated)
	assert.Equal(t, "user_bc6849d9", ac.ReferenceID)
	assert.Equal(t, RolePlayer, ac.Role)
}

func TestExtractFromRequest_GuestRole(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/decks", nil)
	r.Header.Set(HeaderUserID, "user_bc6849d9")
	r.Header.Set(HeaderUserRole, "Guest")

	ac := ExtractFromRequest(r)

	assert.True(t, ac.Authenticated)
	assert.Equal(t, RoleGuest, ac.Role)
}

func TestExtractFromRequest_NoHeaders(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/cards", nil)

	ac := ExtractFromRequest(r)

	assert.False(t, ac.Authenticated)
	assert.Empty(t, ac.ReferenceID)
	assert.Equal(t, RoleGuest, ac.Role)
}

func TestContextRoundTrip(t *testing.T) {
	ac := Context{UserID: 7, ReferenceID: "user_a", Role: RolePlayer, Authenticated: true}

	ctx := WithContext(context.Background(), ac)
	got := FromContext(ctx)

	assert.Equal(t, ac, got)
}

func TestFromContext_Missing(t *testing.T) {
	got := FromContext(context.Background())

	assert.False(t, got.Authenticated)
	assert.Equal(t, RoleGuest, got.Role)
}
