// ABOUTME: Typed generic facade over the raw document Store
// ABOUTME: One Collection per entity type handles JSON codec and identifier plumbing

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cleverdash/dash-gateway/internal/model"
)

// Collection provides typed CRUD over one named collection of a Store.
// It marshals entities to JSON document bodies, keeps the identifier out of
// the stored body so replace can never change it, and re-attaches the
// store-assigned identifier on the way back out.
type Collection[T any, PT model.Doc[T]] struct {
	store Store
	name  string
}

// NewCollection binds an entity type to a named collection of the store.
func NewCollection[T any, PT model.Doc[T]](s Store, name string) *Collection[T, PT] {
	return &Collection[T, PT]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T, PT]) Name() string { return c.name }

// Insert persists the entity and returns it with its assigned identifier.
func (c *Collection[T, PT]) Insert(ctx context.Context, entity PT) (PT, error) {
	data, err := encodeEntity[T, PT](entity)
	if err != nil {
		return nil, err
	}

	doc, err := c.store.Insert(ctx, c.name, data)
	if err != nil {
		return nil, err
	}

	return c.decode(doc)
}

// List returns every entity in the collection.
func (c *Collection[T, PT]) List(ctx context.Context) ([]PT, error) {
	docs, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}

	entities := make([]PT, 0, len(docs))
	for _, doc := range docs {
		entity, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

// Get returns the entity with the given identifier.
func (c *Collection[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return c.decode(doc)
}

// Replace swaps all field values of the identified entity. The stored
// identifier is kept regardless of what the candidate entity carries.
func (c *Collection[T, PT]) Replace(ctx context.Context, id string, entity PT) (PT, error) {
	data, err := encodeEntity[T, PT](entity)
	if err != nil {
		return nil, err
	}

	doc, err := c.store.Replace(ctx, c.name, id, data)
	if err != nil {
		return nil, err
	}

	return c.decode(doc)
}

// Delete removes the identified entity.
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

// encodeEntity marshals a copy of the entity with the identifier cleared,
// so document bodies never carry an "_id" of their own.
func encodeEntity[T any, PT model.Doc[T]](entity PT) ([]byte, error) {
	body := *entity
	stripped := PT(&body)
	stripped.SetRecordID("")

	data, err := json.Marshal(stripped)
	if err != nil {
		return nil, fmt.Errorf("encoding entity: %w", err)
	}
	return data, nil
}

func (c *Collection[T, PT]) decode(doc *Document) (PT, error) {
	entity := PT(new(T))
	if err := json.Unmarshal(doc.Data, entity); err != nil {
		return nil, fmt.Errorf("decoding entity: %w", err)
	}
	entity.SetRecordID(doc.ID)
	return entity, nil
}
