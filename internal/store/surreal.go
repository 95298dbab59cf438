// ABOUTME: SurrealDB implementation of the Store interface over the RPC driver
// ABOUTME: Maps each collection to a SurrealDB table addressed as table:id

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Each SurrealDB record nests the document body under a single field, next
// to the store's own timestamps. Entities may legitimately carry an "id"
// data field (the chart series key), so the body is never merged into the
// record top level where SurrealDB's record id would clobber it.
const (
	surrealIDKey      = "id"
	surrealDataKey    = "data"
	surrealCreatedKey = "created_at"
	surrealUpdatedKey = "updated_at"
)

// SurrealStore implements the Store interface against a SurrealDB server.
type SurrealStore struct {
	db     *surrealdb.DB
	logger *slog.Logger
}

// SurrealConfig holds the connection settings for a SurrealDB backend.
type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	User      string
	Pass      string
}

// NewSurrealStore dials the SurrealDB RPC endpoint, signs in when
// credentials are configured, and selects the namespace and database.
func NewSurrealStore(cfg SurrealConfig) (*SurrealStore, error) {
	db, err := surrealdb.New(rpcURL(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("connecting to surrealdb: %w", err)
	}

	if cfg.User != "" {
		if _, err := db.Signin(map[string]interface{}{"user": cfg.User, "pass": cfg.Pass}); err != nil {
			db.Close()
			return nil, fmt.Errorf("authenticating with surrealdb: %w", err)
		}
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("selecting %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}

	logger := slog.Default().With("component", "store")
	logger.Info("SurrealDB store initialized", "url", cfg.URL, "ns", cfg.Namespace, "db", cfg.Database)

	return &SurrealStore{db: db, logger: logger}, nil
}

// rpcURL normalizes a configured endpoint to the websocket address the
// driver dials: http(s) schemes become ws(s) and the /rpc path is appended
// when missing.
func rpcURL(url string) string {
	url = strings.TrimSuffix(url, "/")
	if after, ok := strings.CutPrefix(url, "http://"); ok {
		url = "ws://" + after
	} else if after, ok := strings.CutPrefix(url, "https://"); ok {
		url = "wss://" + after
	}
	if !strings.HasSuffix(url, "/rpc") {
		url += "/rpc"
	}
	return url
}

// thing renders the driver's table:id record address.
func thing(collection, id string) string {
	return collection + ":" + id
}

// Insert persists data under a freshly assigned identifier.
func (s *SurrealStore) Insert(ctx context.Context, collection string, data []byte) (*Document, error) {
	body, err := decodeBody(data)
	if err != nil {
		return nil, err
	}

	// Dashes would force SurrealDB to escape the record id, so strip them.
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	now := time.Now().UTC().Format(time.RFC3339Nano)
	record := map[string]interface{}{
		surrealDataKey:    body,
		surrealCreatedKey: now,
		surrealUpdatedKey: now,
	}

	res, err := s.db.Create(thing(collection, id), record)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	rows, err := resultRows(res)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("inserting document: empty result")
	}

	s.logger.Debug("inserted document", "collection", collection, "id", id)
	return rowToDocument(collection, rows[0])
}

// List returns every document in the collection ordered by creation time.
func (s *SurrealStore) List(ctx context.Context, collection string) ([]*Document, error) {
	res, err := s.db.Select(collection)
	if errors.Is(err, surrealdb.ErrNoRow) {
		return []*Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	rows, err := resultRows(res)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]*Document, 0, len(rows))
	for _, row := range rows {
		doc, err := rowToDocument(collection, row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	// SurrealDB returns rows in id order; same-instant creations keep it
	// as the tiebreak.
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})

	return docs, nil
}

// Get returns the document with the given identifier, or ErrNotFound.
func (s *SurrealStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	res, err := s.db.Select(thing(collection, id))
	if errors.Is(err, surrealdb.ErrNoRow) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}
	rows, err := resultRows(res)
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	return rowToDocument(collection, rows[0])
}

// Replace swaps the full document body, keeping the identifier and creation
// time. Returns ErrNotFound if the identifier is unknown, since SurrealDB's
// update would otherwise create the record.
func (s *SurrealStore) Replace(ctx context.Context, collection, id string, data []byte) (*Document, error) {
	existing, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	body, err := decodeBody(data)
	if err != nil {
		return nil, err
	}
	record := map[string]interface{}{
		surrealDataKey:    body,
		surrealCreatedKey: existing.CreatedAt.Format(time.RFC3339Nano),
		surrealUpdatedKey: time.Now().UTC().Format(time.RFC3339Nano),
	}

	res, err := s.db.Update(thing(collection, id), record)
	if errors.Is(err, surrealdb.ErrNoRow) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}
	rows, err := resultRows(res)
	if err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	s.logger.Debug("replaced document", "collection", collection, "id", id)
	return rowToDocument(collection, rows[0])
}

// Delete removes the document, or returns ErrNotFound. The driver's delete
// reports nothing back, so existence is checked first to keep the contract.
func (s *SurrealStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.Get(ctx, collection, id); err != nil {
		return err
	}

	if _, err := s.db.Delete(thing(collection, id)); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	s.logger.Debug("deleted document", "collection", collection, "id", id)
	return nil
}

// Close shuts down the websocket connection.
func (s *SurrealStore) Close() error {
	s.db.Close()
	return nil
}

func decodeBody(data []byte) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decoding document body: %w", err)
	}
	return body, nil
}

// resultRows normalizes a driver result into row maps: selecting a table
// yields a slice, addressing a single record yields one object, and a
// missing record yields nil.
func resultRows(res interface{}) ([]map[string]interface{}, error) {
	switch result := res.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(result))
		for _, item := range result {
			row, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("unexpected surrealdb row type %T", item)
			}
			rows = append(rows, row)
		}
		return rows, nil
	case map[string]interface{}:
		return []map[string]interface{}{result}, nil
	default:
		return nil, fmt.Errorf("unexpected surrealdb result type %T", res)
	}
}

// rowToDocument converts a SurrealDB row into a Document, splitting the
// record id and timestamps from the nested body.
func rowToDocument(collection string, row map[string]interface{}) (*Document, error) {
	rawID, _ := row[surrealIDKey].(string)
	id := strings.TrimPrefix(rawID, collection+":")
	id = strings.Trim(id, "⟨⟩")
	if id == "" {
		return nil, fmt.Errorf("surrealdb row missing id")
	}

	doc := &Document{
		ID:         id,
		Collection: collection,
	}

	body, ok := row[surrealDataKey].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("surrealdb row missing body")
	}

	if raw, ok := row[surrealCreatedKey].(string); ok {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		doc.CreatedAt = t
	}
	if raw, ok := row[surrealUpdatedKey].(string); ok {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		doc.UpdatedAt = t
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding document body: %w", err)
	}
	doc.Data = data

	return doc, nil
}
