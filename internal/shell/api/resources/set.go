package resources

import (
	"fmt"
	"net/http"

	"github.com/deckbase/deckbase/internal/shell/catalog"
	"github.com/manyminds/api2go"
)

// =============================================================================
// Set JSON:API Model
// =============================================================================

// Set wraps catalog.Set to implement JSON:API interfaces.
type Set struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

// GetID returns the set ID for JSON:API.
func (s Set) GetID() string {
	return s.ID
}

// SetID sets the set ID for JSON:API.
func (s *Set) SetID(id string) error {
	s.ID = id
	return nil
}

// GetName returns the JSON:API resource type name.
func (s Set) GetName() string {
	return "sets"
}

// SetFromCatalog converts a catalog set to a JSON:API Set.
func SetFromCatalog(s catalog.Set) Set {
	return Set{ID: s.ID, Name: s.Name}
}

// =============================================================================
// SetResource - Read-Only Operations
// =============================================================================

// SetResource implements the api2go resource interface for card sets.
type SetResource struct {
	Catalog *catalog.Catalog
}

// NewSetResource creates a new set resource handler.
func NewSetResource(c *catalog.Catalog) *SetResource {
	return &SetResource{Catalog: c}
}

// FindAll returns all card sets.
// GET /jsonapi/v1/sets
func (r SetResource) FindAll(req api2go.Request) (api2go.Responder, error) {
	sets := r.Catalog.Sets()
	result := make([]Set, 0, len(sets))
	for _, s := range sets {
		result = append(result, SetFromCatalog(s))
	}
	return &Response{
		Code: http.StatusOK,
		Res:  result,
		Meta: map[string]interface{}{"total": len(result)},
	}, nil
}

// FindOne returns a single set by ID.
// GET /jsonapi/v1/sets/{id}
func (r SetResource) FindOne(id string, req api2go.Request) (api2go.Responder, error) {
	for _, s := range r.Catalog.Sets() {
		if s.ID == id {
			return &Response{Code: http.StatusOK, Res: SetFromCatalog(s)}, nil
		}
	}
	return &Response{Code: http.StatusNotFound}, api2go.NewHTTPError(
		fmt.Errorf("set not found"),
		"Set not found",
		http.StatusNotFound,
	)
}
