package catalog

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/deckbase/deckbase/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Manifest
// =============================================================================

// ManifestName is the set manifest file expected in the data directory.
const ManifestName = "sets.yaml"

type manifest struct {
	Sets []Set `yaml:"sets"`
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the set manifest and every CSV set file from dataDir. Missing
// set files are skipped with a warning; a catalog with no cards at all is an
// error.
func Load(dataDir string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("reading set manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing set manifest: %w", err)
	}
	if len(m.Sets) == 0 {
		return nil, fmt.Errorf("set manifest %s names no sets", ManifestName)
	}

	var sets []Set
	var cards []domain.CardDefinition
	for _, set := range m.Sets {
		path := filepath.Join(dataDir, set.File)
		if _, err := os.Stat(path); err != nil {
			logger.Warn("skipping missing set file", "set", set.ID, "file", set.File)
			continue
		}
		setCards, err := loadSetCSV(path, set.ID)
		if err != nil {
			return nil, fmt.Errorf("loading set %s: %w", set.ID, err)
		}
		sets = append(sets, set)
		cards = append(cards, setCards...)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("no cards loaded from %s", dataDir)
	}

	logger.Info("catalog loaded", "sets", len(sets), "cards", len(cards))
	return New(sets, cards), nil
}

// loadSetCSV loads one set file. The header row names the columns; the
// one-per-deck flag appears in the wild under two spellings and both are
// normalized here, never past this boundary.
func loadSetCSV(path, setID string) ([]domain.CardDefinition, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var out []domain.CardDefinition
	for i, row := range rows[1:] {
		id := get(row, "id")
		if id == "" {
			return nil, fmt.Errorf("csv %s row %d: missing id", path, i+2)
		}
		cardType, err := domain.ParseCardType(get(row, "type"))
		if err != nil {
			return nil, fmt.Errorf("csv %s row %d: %w", path, i+2, err)
		}

		// Either column spelling marks the same flag.
		opd := parseBool(get(row, "one_per_deck")) || parseBool(get(row, "is_one_per_deck"))

		character := get(row, "character")
		if character == "-" {
			character = domain.AnyCharacter
		}

		out = append(out, domain.CardDefinition{
			ID:         id,
			Name:       get(row, "name"),
			Type:       cardType,
			Text:       get(row, "text"),
			OnePerDeck: opd,
			Character:  character,
			ImageURL:   get(row, "image_url"),
			SetID:      setID,
		})
	}
	return out, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
