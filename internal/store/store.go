// ABOUTME: Store interface and document type for dashboard persistence
// ABOUTME: Backends persist raw JSON documents, one collection per entity type

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Document is one persisted record. Data holds the entity's fields as JSON;
// the identifier lives outside the body and is assigned by the store on
// insert, never supplied by the caller.
type Document struct {
	ID         string
	Collection string
	Data       []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists JSON documents grouped into named collections. All
// operations are atomic at single-document granularity. Replace and Delete
// on an unknown identifier return ErrNotFound, never succeed silently.
type Store interface {
	// Insert persists data under a newly assigned unique identifier and
	// returns the stored document.
	Insert(ctx context.Context, collection string, data []byte) (*Document, error)

	// List returns every document in the collection in insertion order.
	List(ctx context.Context, collection string) ([]*Document, error)

	// Get returns the document with the given identifier.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Replace swaps the full document body, keeping the identifier.
	Replace(ctx context.Context, collection, id string, data []byte) (*Document, error)

	// Delete removes the document.
	Delete(ctx context.Context, collection, id string) error

	// Close releases any resources held by the store.
	Close() error
}
