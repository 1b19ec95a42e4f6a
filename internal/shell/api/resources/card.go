// Package resources provides read-only JSON:API resource implementations for
// the card catalog.
package resources

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/deckbase/deckbase/internal/shell/catalog"
	"github.com/manyminds/api2go"
)

// =============================================================================
// Card JSON:API Model
// =============================================================================

// Card wraps domain.CardDefinition to implement JSON:API interfaces. The
// JSON:API id is "<type>:<id>" because card ids are only unique within a
// card type.
type Card struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	OnePerDeck bool   `json:"one_per_deck"`
	Character  string `json:"character,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	CardSetID  string `json:"set_id,omitempty"`
}

// GetID returns the card ID for JSON:API.
func (c Card) GetID() string {
	return c.ID
}

// SetID sets the card ID for JSON:API.
func (c *Card) SetID(id string) error {
	c.ID = id
	return nil
}

// GetName returns the JSON:API resource type name.
func (c Card) GetName() string {
	return "cards"
}

// CardFromDomain converts a catalog card to a JSON:API Card.
func CardFromDomain(d domain.CardDefinition) Card {
	return Card{
		ID:         string(d.Type) + ":" + d.ID,
		Name:       d.Name,
		Type:       string(d.Type),
		Text:       d.Text,
		OnePerDeck: d.OnePerDeck,
		Character:  d.Character,
		ImageURL:   d.ImageURL,
		CardSetID:  d.SetID,
	}
}

// =============================================================================
// CardResource - Read-Only Operations
// =============================================================================

// CardResource implements the api2go resource interface for catalog cards.
// The catalog is immutable, so only reads are supported.
type CardResource struct {
	Catalog *catalog.Catalog
}

// NewCardResource creates a new card resource handler.
func NewCardResource(c *catalog.Catalog) *CardResource {
	return &CardResource{Catalog: c}
}

// FindAll returns catalog cards, optionally filtered.
// GET /jsonapi/v1/cards
func (r CardResource) FindAll(req api2go.Request) (api2go.Responder, error) {
	opt := catalog.FilterOptions{}

	if types, ok := req.QueryParams["filter[type]"]; ok {
		for _, raw := range types {
			t, err := domain.ParseCardType(raw)
			if err != nil {
				return &Response{Code: http.StatusBadRequest}, api2go.NewHTTPError(
					fmt.Errorf("unknown card type: %s", raw),
					"Unknown card type",
					http.StatusBadRequest,
				)
			}
			opt.Types = append(opt.Types, t)
		}
	}
	if sets, ok := req.QueryParams["filter[set]"]; ok {
		opt.SetIDs = sets
	}
	if chars, ok := req.QueryParams["filter[character]"]; ok && len(chars) > 0 {
		opt.Character = chars[0]
	}
	if q, ok := req.QueryParams["filter[q]"]; ok && len(q) > 0 {
		opt.FreeWords = q[0]
	}

	cards := r.Catalog.Filter(opt)
	result := make([]Card, 0, len(cards))
	for _, c := range cards {
		result = append(result, CardFromDomain(c))
	}

	return &Response{
		Code: http.StatusOK,
		Res:  result,
		Meta: map[string]interface{}{"total": len(result)},
	}, nil
}

// FindOne returns a single card by its composite "<type>:<id>" id.
// GET /jsonapi/v1/cards/{id}
func (r CardResource) FindOne(id string, req api2go.Request) (api2go.Responder, error) {
	typePart, idPart, ok := strings.Cut(id, ":")
	if ok {
		if t, err := domain.ParseCardType(typePart); err == nil {
			if def, found := r.Catalog.Lookup(t, idPart); found {
				return &Response{Code: http.StatusOK, Res: CardFromDomain(*def)}, nil
			}
		}
	}
	return &Response{Code: http.StatusNotFound}, api2go.NewHTTPError(
		fmt.Errorf("card not found"),
		"Card not found",
		http.StatusNotFound,
	)
}

// =============================================================================
// Response Helper
// =============================================================================

// Response implements api2go.Responder for custom responses.
type Response struct {
	Code int
	Res  interface{}
	Meta map[string]interface{}
}

// Metadata returns additional metadata for the response.
func (r *Response) Metadata() map[string]interface{} {
	return r.Meta
}

// Result returns the response data.
func (r *Response) Result() interface{} {
	return r.Res
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.Code
}
