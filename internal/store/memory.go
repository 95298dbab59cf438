// ABOUTME: In-memory Store implementation backed by per-collection maps
// ABOUTME: Used by tests and as the "memory" backend for throwaway deployments

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryEntry pairs a stored document with its insertion sequence number,
// so List can report true insertion order even when two inserts land on
// the same clock reading.
type memoryEntry struct {
	doc *Document
	seq uint64
}

// MemoryStore is an in-memory Store implementation. It is safe for
// concurrent use and keeps data only for the lifetime of the process.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         uint64
	collections map[string]map[string]*memoryEntry // collection -> id -> entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]*memoryEntry),
	}
}

// Insert stores data under a freshly assigned identifier.
func (m *MemoryStore) Insert(ctx context.Context, collection string, data []byte) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	doc := &Document{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       append([]byte(nil), data...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	entries := m.collections[collection]
	if entries == nil {
		entries = make(map[string]*memoryEntry)
		m.collections[collection] = entries
	}
	m.seq++
	entries[doc.ID] = &memoryEntry{doc: doc, seq: m.seq}

	return copyDocument(doc), nil
}

// List returns every document in the collection in insertion order.
func (m *MemoryStore) List(ctx context.Context, collection string) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*memoryEntry, 0, len(m.collections[collection]))
	for _, e := range m.collections[collection] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	docs := make([]*Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, copyDocument(e.doc))
	}
	return docs, nil
}

// Get returns the document with the given identifier, or ErrNotFound.
func (m *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(entry.doc), nil
}

// Replace swaps the full document body, or returns ErrNotFound. The
// insertion sequence is kept, so replaced documents hold their list
// position.
func (m *MemoryStore) Replace(ctx context.Context, collection, id string, data []byte) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}

	entry.doc.Data = append([]byte(nil), data...)
	entry.doc.UpdatedAt = time.Now().UTC()
	return copyDocument(entry.doc), nil
}

// Delete removes the document, or returns ErrNotFound.
func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.collections[collection], id)
	return nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// copyDocument returns a copy so callers can't mutate stored state.
func copyDocument(doc *Document) *Document {
	d := *doc
	d.Data = append([]byte(nil), doc.Data...)
	return &d
}
