package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func writeTestCatalog(t *testing.T, manifest string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const testManifest = `sets:
  - id: classic
    name: Classic
    file: classic.csv
`

const testClassicCSV = `id,name,type,text,one_per_deck,character,image_url
leonidas,Leonidas,character,,,-,
thermopylae,Thermopylae,location,,true,-,
spear-throw,Spear Throw,special,Devastating ranged attack,true,Leonidas,
power-8,Power 8,power,,,,
`

func TestLoad(t *testing.T) {
	dir := writeTestCatalog(t, testManifest, map[string]string{"classic.csv": testClassicCSV})

	c, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	require.Len(t, c.Sets(), 1)
	assert.Equal(t, "classic", c.Sets()[0].ID)

	def, ok := c.Lookup(domain.CardTypeSpecial, "spear-throw")
	require.True(t, ok)
	assert.True(t, def.OnePerDeck)
	assert.Equal(t, "Leonidas", def.Character)
	assert.Equal(t, "classic", def.SetID)
}

func TestLoad_AlternateOnePerDeckSpelling(t *testing.T) {
	// Both column spellings mark the same flag; only the canonical field
	// exists after loading.
	csv := `id,name,type,is_one_per_deck
last-stand,Last Stand,event,true
ambush,Ambush,event,false
`
	dir := writeTestCatalog(t, testManifest, map[string]string{"classic.csv": csv})

	c, err := Load(dir, nil)
	require.NoError(t, err)

	def, ok := c.Lookup(domain.CardTypeEvent, "last-stand")
	require.True(t, ok)
	assert.True(t, def.OnePerDeck)

	def, ok = c.Lookup(domain.CardTypeEvent, "ambush")
	require.True(t, ok)
	assert.False(t, def.OnePerDeck)
}

func TestLoad_DashCharacterMeansAny(t *testing.T) {
	dir := writeTestCatalog(t, testManifest, map[string]string{"classic.csv": testClassicCSV})

	c, err := Load(dir, nil)
	require.NoError(t, err)

	def, ok := c.Lookup(domain.CardTypeCharacter, "leonidas")
	require.True(t, ok)
	assert.True(t, def.ScopedTo("Xena"))
}

func TestLoad_SkipsMissingSetFile(t *testing.T) {
	manifest := testManifest + `  - id: expansion
    name: Expansion
    file: expansion.csv
`
	dir := writeTestCatalog(t, manifest, map[string]string{"classic.csv": testClassicCSV})

	c, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Len(t, c.Sets(), 1)
}

func TestLoad_NoManifest(t *testing.T) {
	_, err := Load(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestLoad_UnknownType(t *testing.T) {
	csv := "id,name,type\nx,X,sorcery\n"
	dir := writeTestCatalog(t, testManifest, map[string]string{"classic.csv": csv})

	_, err := Load(dir, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownCardType)
}

func TestLoad_MissingID(t *testing.T) {
	csv := "id,name,type\n,X,event\n"
	dir := writeTestCatalog(t, testManifest, map[string]string{"classic.csv": csv})

	_, err := Load(dir, nil)
	assert.Error(t, err)
}

// =============================================================================
// Filter Tests
// =============================================================================

func loadedTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := writeTestCatalog(t, testManifest, map[string]string{"classic.csv": testClassicCSV})
	c, err := Load(dir, nil)
	require.NoError(t, err)
	return c
}

func TestFilter_ByType(t *testing.T) {
	c := loadedTestCatalog(t)

	out := c.Filter(FilterOptions{Types: []domain.CardType{domain.CardTypeCharacter}})

	require.Len(t, out, 1)
	assert.Equal(t, "leonidas", out[0].ID)
}

func TestFilter_ByOnePerDeck(t *testing.T) {
	c := loadedTestCatalog(t)
	opd := true

	out := c.Filter(FilterOptions{OnePerDeck: &opd})

	assert.Len(t, out, 2)
}

func TestFilter_ByCharacterScope(t *testing.T) {
	c := loadedTestCatalog(t)

	out := c.Filter(FilterOptions{
		Types:     []domain.CardType{domain.CardTypeSpecial},
		Character: "leonidas",
	})
	require.Len(t, out, 1)

	out = c.Filter(FilterOptions{
		Types:     []domain.CardType{domain.CardTypeSpecial},
		Character: "Xena",
	})
	assert.Empty(t, out)
}

func TestFilter_FreeWords(t *testing.T) {
	c := loadedTestCatalog(t)

	out := c.Filter(FilterOptions{FreeWords: "ranged attack"})
	require.Len(t, out, 1)
	assert.Equal(t, "spear-throw", out[0].ID)

	out = c.Filter(FilterOptions{FreeWords: "ranged fortress"})
	assert.Empty(t, out)
}

func TestFilter_NoConstraints(t *testing.T) {
	c := loadedTestCatalog(t)

	assert.Len(t, c.Filter(FilterOptions{}), c.Len())
}
