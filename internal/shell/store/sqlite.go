package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deckbase/deckbase/internal/core/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// Executor Interface - Shared by DB and Transaction
// =============================================================================

// executor abstracts database operations that can be performed on both
// a database connection and a transaction.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// User Operations
// =============================================================================

func (s *SQLiteStore) ResolveUser(ctx context.Context, referenceID string) (int, error) {
	return resolveUser(ctx, s.db, referenceID)
}

// =============================================================================
// Deck Operations
// =============================================================================

// deckRow represents a deck row in the database.
type deckRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	OwnerID   int    `db:"owner_id"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// deckCardRow represents a deck card row in the database.
type deckCardRow struct {
	DeckID   string `db:"deck_id"`
	CardType string `db:"card_type"`
	CardID   string `db:"card_id"`
	Quantity int    `db:"quantity"`
}

func (s *SQLiteStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	return createDeck(ctx, s.db, deck)
}

func (s *SQLiteStore) GetDeck(ctx context.Context, id string) (*domain.Deck, error) {
	return getDeck(ctx, s.db, id)
}

func (s *SQLiteStore) GetDeckBySlug(ctx context.Context, ownerID int, slug string) (*domain.Deck, error) {
	return getDeckBySlug(ctx, s.db, ownerID, slug)
}

func (s *SQLiteStore) UpdateDeck(ctx context.Context, deck *domain.Deck) error {
	return updateDeck(ctx, s.db, deck)
}

func (s *SQLiteStore) DeleteDeck(ctx context.Context, id string) error {
	return deleteDeck(ctx, s.db, id)
}

func (s *SQLiteStore) ListDecksByOwner(ctx context.Context, ownerID int, opts ListOptions) ([]domain.Deck, error) {
	return listDecksByOwner(ctx, s.db, ownerID, opts)
}

func (s *SQLiteStore) GetDeckCards(ctx context.Context, deckID string) ([]domain.DeckCard, error) {
	return getDeckCards(ctx, s.db, deckID)
}

func (s *SQLiteStore) ReplaceDeckCards(ctx context.Context, deckID string, cards []domain.DeckCard) error {
	return replaceDeckCards(ctx, s.db, deckID, cards)
}

// =============================================================================
// Transaction Support
// =============================================================================

func (s *SQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("WithTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	txS := &txSQLiteStore{tx: tx}

	if err := fn(txS); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return NewStoreError("WithTx", "", "", fmt.Sprintf("rollback failed after error: %v", err), ErrTxFailed)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("WithTx", "", "", "failed to commit transaction", ErrTxFailed)
	}

	return nil
}

// =============================================================================
// Transaction Store
// =============================================================================

// txSQLiteStore implements Store within a transaction.
type txSQLiteStore struct {
	tx *sqlx.Tx
}

func (s *txSQLiteStore) ResolveUser(ctx context.Context, referenceID string) (int, error) {
	return resolveUser(ctx, s.tx, referenceID)
}

func (s *txSQLiteStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	return createDeck(ctx, s.tx, deck)
}

func (s *txSQLiteStore) GetDeck(ctx context.Context, id string) (*domain.Deck, error) {
	return getDeck(ctx, s.tx, id)
}

func (s *txSQLiteStore) GetDeckBySlug(ctx context.Context, ownerID int, slug string) (*domain.Deck, error) {
	return getDeckBySlug(ctx, s.tx, ownerID, slug)
}

func (s *txSQLiteStore) UpdateDeck(ctx context.Context, deck *domain.Deck) error {
	return updateDeck(ctx, s.tx, deck)
}

func (s *txSQLiteStore) DeleteDeck(ctx context.Context, id string) error {
	return deleteDeck(ctx, s.tx, id)
}

func (s *txSQLiteStore) ListDecksByOwner(ctx context.Context, ownerID int, opts ListOptions) ([]domain.Deck, error) {
	return listDecksByOwner(ctx, s.tx, ownerID, opts)
}

func (s *txSQLiteStore) GetDeckCards(ctx context.Context, deckID string) ([]domain.DeckCard, error) {
	return getDeckCards(ctx, s.tx, deckID)
}

func (s *txSQLiteStore) ReplaceDeckCards(ctx context.Context, deckID string, cards []domain.DeckCard) error {
	return replaceDeckCards(ctx, s.tx, deckID, cards)
}

func (s *txSQLiteStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// Already in a transaction, just run the function
	return fn(s)
}

func (s *txSQLiteStore) Close() error {
	// No-op for tx store
	return nil
}

// =============================================================================
// Shared Implementation Functions
// =============================================================================

func resolveUser(ctx context.Context, exec executor, referenceID string) (int, error) {
	if referenceID == "" {
		return 0, NewStoreError("ResolveUser", "user", "", "reference id is required", ErrNotFound)
	}

	// Upsert keyed on reference_id, then read the local id back.
	_, err := exec.ExecContext(ctx,
		`INSERT INTO users (reference_id, created_at) VALUES (?, ?)
		 ON CONFLICT(reference_id) DO NOTHING`,
		referenceID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, NewStoreError("ResolveUser", "user", referenceID, err.Error(), err)
	}

	var id int
	err = exec.GetContext(ctx, &id, `SELECT id FROM users WHERE reference_id = ?`, referenceID)
	if err != nil {
		return 0, NewStoreError("ResolveUser", "user", referenceID, err.Error(), err)
	}
	return id, nil
}

func createDeck(ctx context.Context, exec executor, deck *domain.Deck) error {
	query := `
		INSERT INTO decks (id, name, slug, owner_id, created_at, updated_at)
		VALUES (:id, :name, :slug, :owner_id, :created_at, :updated_at)`

	row := map[string]any{
		"id":         deck.ID,
		"name":       deck.Name,
		"slug":       deck.Slug,
		"owner_id":   deck.OwnerID,
		"created_at": deck.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": deck.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "slug") {
				return NewStoreError("CreateDeck", "deck", deck.ID, "slug already in use", ErrDuplicateSlug)
			}
			return NewStoreError("CreateDeck", "deck", deck.ID, "id already exists", ErrDuplicateID)
		}
		if isForeignKeyViolation(err) {
			return NewStoreError("CreateDeck", "deck", deck.ID, "owner does not exist", ErrForeignKey)
		}
		return NewStoreError("CreateDeck", "deck", deck.ID, err.Error(), err)
	}
	return nil
}

func getDeck(ctx context.Context, exec executor, id string) (*domain.Deck, error) {
	var row deckRow
	err := exec.GetContext(ctx, &row, `SELECT * FROM decks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetDeck", "deck", id, "not found", ErrNotFound)
		}
		return nil, NewStoreError("GetDeck", "deck", id, err.Error(), err)
	}

	deck, err := deckFromRow(row)
	if err != nil {
		return nil, NewStoreError("GetDeck", "deck", id, err.Error(), err)
	}

	cards, err := getDeckCards(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	deck.Cards = cards
	return deck, nil
}

func getDeckBySlug(ctx context.Context, exec executor, ownerID int, slug string) (*domain.Deck, error) {
	var row deckRow
	err := exec.GetContext(ctx, &row,
		`SELECT * FROM decks WHERE owner_id = ? AND slug = ?`, ownerID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetDeckBySlug", "deck", slug, "not found", ErrNotFound)
		}
		return nil, NewStoreError("GetDeckBySlug", "deck", slug, err.Error(), err)
	}
	return getDeck(ctx, exec, row.ID)
}

func updateDeck(ctx context.Context, exec executor, deck *domain.Deck) error {
	query := `
		UPDATE decks
		SET name = :name, slug = :slug, updated_at = :updated_at
		WHERE id = :id`

	row := map[string]any{
		"id":         deck.ID,
		"name":       deck.Name,
		"slug":       deck.Slug,
		"updated_at": deck.UpdatedAt.UTC().Format(time.RFC3339),
	}

	res, err := exec.NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return NewStoreError("UpdateDeck", "deck", deck.ID, "slug already in use", ErrDuplicateSlug)
		}
		return NewStoreError("UpdateDeck", "deck", deck.ID, err.Error(), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NewStoreError("UpdateDeck", "deck", deck.ID, "not found", ErrNotFound)
	}
	return nil
}

func deleteDeck(ctx context.Context, exec executor, id string) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteDeck", "deck", id, err.Error(), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NewStoreError("DeleteDeck", "deck", id, "not found", ErrNotFound)
	}
	return nil
}

func listDecksByOwner(ctx context.Context, exec executor, ownerID int, opts ListOptions) ([]domain.Deck, error) {
	opts = opts.Normalize()

	var rows []deckRow
	err := exec.SelectContext(ctx, &rows,
		`SELECT * FROM decks WHERE owner_id = ? ORDER BY updated_at DESC LIMIT ? OFFSET ?`,
		ownerID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListDecksByOwner", "deck", "", err.Error(), err)
	}

	decks := make([]domain.Deck, 0, len(rows))
	for _, row := range rows {
		deck, err := deckFromRow(row)
		if err != nil {
			return nil, NewStoreError("ListDecksByOwner", "deck", row.ID, err.Error(), err)
		}
		cards, err := getDeckCards(ctx, exec, row.ID)
		if err != nil {
			return nil, err
		}
		deck.Cards = cards
		decks = append(decks, *deck)
	}
	return decks, nil
}

func getDeckCards(ctx context.Context, exec executor, deckID string) ([]domain.DeckCard, error) {
	var rows []deckCardRow
	err := exec.SelectContext(ctx, &rows,
		`SELECT * FROM deck_cards WHERE deck_id = ? ORDER BY card_type, card_id`, deckID)
	if err != nil {
		return nil, NewStoreError("GetDeckCards", "deck_card", deckID, err.Error(), err)
	}

	cards := make([]domain.DeckCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, domain.DeckCard{
			Type:     domain.CardType(row.CardType),
			CardID:   row.CardID,
			Quantity: row.Quantity,
		})
	}
	return cards, nil
}

func replaceDeckCards(ctx context.Context, exec executor, deckID string, cards []domain.DeckCard) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, deckID); err != nil {
		return NewStoreError("ReplaceDeckCards", "deck_card", deckID, err.Error(), err)
	}

	for _, dc := range cards {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO deck_cards (deck_id, card_type, card_id, quantity) VALUES (?, ?, ?, ?)`,
			deckID, string(dc.Type), dc.CardID, dc.Quantity)
		if err != nil {
			if isForeignKeyViolation(err) {
				return NewStoreError("ReplaceDeckCards", "deck_card", deckID, "deck does not exist", ErrForeignKey)
			}
			return NewStoreError("ReplaceDeckCards", "deck_card", deckID, err.Error(), err)
		}
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func deckFromRow(row deckRow) (*domain.Deck, error) {
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	return &domain.Deck{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		OwnerID:   row.OwnerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
