// ABOUTME: Tests for the in-memory Store implementation
// ABOUTME: Mirrors the SQLite contract: CRUD, not-found, isolation, copies

package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_CRUD(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	doc, err := m.Insert(ctx, "calendar", []byte(`{"title":"Standup"}`))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("Insert did not assign an identifier")
	}

	got, err := m.Get(ctx, "calendar", doc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Data) != `{"title":"Standup"}` {
		t.Errorf("Data mismatch: got %s", got.Data)
	}

	updated, err := m.Replace(ctx, "calendar", doc.ID, []byte(`{"title":"Retro"}`))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if updated.ID != doc.ID {
		t.Errorf("identifier changed on replace")
	}

	if err := m.Delete(ctx, "calendar", doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get(ctx, "calendar", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if _, err := m.Get(ctx, "team", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Replace(ctx, "team", "nope", []byte(`{}`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace: expected ErrNotFound, got %v", err)
	}
	if err := m.Delete(ctx, "team", "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListInsertionOrder(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		doc, err := m.Insert(ctx, "pie_chart", []byte(`{}`))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		ids = append(ids, doc.ID)
	}

	docs, err := m.List(ctx, "pie_chart")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != len(ids) {
		t.Fatalf("expected %d documents, got %d", len(ids), len(docs))
	}
	for i, doc := range docs {
		if doc.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], doc.ID)
		}
	}
}

func TestMemoryStore_ReplaceKeepsListPosition(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		doc, err := m.Insert(ctx, "line_chart", []byte(`{}`))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		ids = append(ids, doc.ID)
	}

	if _, err := m.Replace(ctx, "line_chart", ids[0], []byte(`{"updated":true}`)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	docs, err := m.List(ctx, "line_chart")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i, doc := range docs {
		if doc.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], doc.ID)
		}
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	doc, err := m.Insert(ctx, "team", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	doc.Data[2] = 'X'

	got, err := m.Get(ctx, "team", doc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Data) != `{"a":1}` {
		t.Errorf("stored data mutated through returned document: %s", got.Data)
	}
}
