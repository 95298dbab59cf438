// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Keeps all collections in one documents table with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is created if it doesn't exist, and parent directories
// are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the documents table if it doesn't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		);

		CREATE INDEX IF NOT EXISTS idx_documents_collection_created
			ON documents(collection, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Insert persists data under a freshly assigned identifier.
func (s *SQLiteStore) Insert(ctx context.Context, collection string, data []byte) (*Document, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := &Document{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.Collection,
		doc.ID,
		string(doc.Data),
		doc.CreatedAt.Format(time.RFC3339Nano),
		doc.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	s.logger.Debug("inserted document", "collection", collection, "id", doc.ID)
	return doc, nil
}

// List returns every document in the collection in insertion order.
func (s *SQLiteStore) List(ctx context.Context, collection string) ([]*Document, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows, collection)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Get returns the document with the given identifier, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = ? AND id = ?
	`

	row := s.db.QueryRowContext(ctx, query, collection, id)
	doc, err := scanDocument(row, collection)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Replace swaps the full document body. Returns ErrNotFound if the
// identifier is unknown.
func (s *SQLiteStore) Replace(ctx context.Context, collection, id string, data []byte) (*Document, error) {
	query := `
		UPDATE documents
		SET data = ?, updated_at = ?
		WHERE collection = ? AND id = ?
	`

	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := s.db.ExecContext(ctx, query,
		string(data),
		now.Format(time.RFC3339Nano),
		collection,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	s.logger.Debug("replaced document", "collection", collection, "id", id)
	return s.Get(ctx, collection, id)
}

// Delete removes the document. Returns ErrNotFound if the identifier is unknown.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted document", "collection", collection, "id", id)
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner, collection string) (*Document, error) {
	var doc Document
	var data, createdAtStr, updatedAtStr string

	if err := row.Scan(&doc.ID, &data, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Collection = collection
	doc.Data = []byte(data)

	var err error
	doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &doc, nil
}
