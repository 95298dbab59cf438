// Package store provides document persistence for the dashboard.
//
// # Architecture
//
// Store is a small document-store interface: raw JSON bodies grouped into
// named collections, addressed by a store-assigned identifier. Three
// backends implement it:
//
//   - SQLiteStore: the default, one documents table via modernc.org/sqlite
//     with WAL mode and automatic schema creation
//   - MemoryStore: per-collection maps under a RWMutex, used by tests and
//     the "memory" backend
//   - SurrealStore: SurrealDB over its HTTP key-value endpoints
//
// Collection[T] is the typed layer the rest of the system uses. It binds an
// entity type to a collection name, handles the JSON codec, and guarantees
// the identifier invariants: assigned on insert, never stored inside the
// body, never changed by replace.
//
// # Error Handling
//
// Get, Replace, and Delete return ErrNotFound for unknown identifiers; a
// missing record is a distinct, reportable condition at every layer above.
//
// # Testing
//
// Use NewMemoryStore() for unit tests and NewSQLiteStore over t.TempDir()
// for integration tests against real SQLite.
package store
