// ABOUTME: Generic HTTP resource controller for dashboard entities
// ABOUTME: One implementation serves all nine collections via type parameters

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cleverdash/dash-gateway/internal/model"
	"github.com/cleverdash/dash-gateway/internal/schema"
	"github.com/cleverdash/dash-gateway/internal/store"
)

// maxBodyBytes caps request bodies. Dashboard payloads are small; anything
// past this is a client bug or abuse.
const maxBodyBytes = 1 << 20

// Resource serves the five CRUD operations for a single entity collection.
// Create and Update gate every candidate through schema.Validate before the
// store is touched, so an invalid payload can never be persisted.
type Resource[T any, PT model.Doc[T]] struct {
	name       string
	collection *store.Collection[T, PT]
	logger     *slog.Logger
}

// NewResource wires a resource controller over the given backing store.
func NewResource[T any, PT model.Doc[T]](s store.Store, name string) *Resource[T, PT] {
	return &Resource[T, PT]{
		name:       name,
		collection: store.NewCollection[T, PT](s, name),
		logger:     slog.Default().With("component", "api", "resource", name),
	}
}

// Mount registers the resource's routes on the mux under /<name>.
func (rs *Resource[T, PT]) Mount(mux *http.ServeMux) {
	base := "/" + rs.name
	mux.HandleFunc("GET "+base, rs.handleList)
	mux.HandleFunc("POST "+base, rs.handleCreate)
	mux.HandleFunc("GET "+base+"/{id}", rs.handleGet)
	mux.HandleFunc("PUT "+base+"/{id}", rs.handleUpdate)
	mux.HandleFunc("DELETE "+base+"/{id}", rs.handleDelete)
}

func (rs *Resource[T, PT]) handleList(w http.ResponseWriter, r *http.Request) {
	entities, err := rs.collection.List(r.Context())
	if err != nil {
		rs.internalError(w, "listing records", err)
		return
	}
	if entities == nil {
		entities = []PT{}
	}
	respondJSON(w, http.StatusOK, entities)
}

func (rs *Resource[T, PT]) handleGet(w http.ResponseWriter, r *http.Request) {
	entity, err := rs.collection.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, rs.name+" record not found")
		return
	}
	if err != nil {
		rs.internalError(w, "fetching record", err)
		return
	}
	respondJSON(w, http.StatusOK, entity)
}

func (rs *Resource[T, PT]) handleCreate(w http.ResponseWriter, r *http.Request) {
	entity, ok := rs.decodeBody(w, r)
	if !ok {
		return
	}
	if violations := schema.Validate(entity); violations != nil {
		respondViolations(w, violations)
		return
	}

	created, err := rs.collection.Insert(r.Context(), entity)
	if err != nil {
		rs.internalError(w, "inserting record", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (rs *Resource[T, PT]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	entity, ok := rs.decodeBody(w, r)
	if !ok {
		return
	}
	if violations := schema.Validate(entity); violations != nil {
		respondViolations(w, violations)
		return
	}

	updated, err := rs.collection.Replace(r.Context(), r.PathValue("id"), entity)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, rs.name+" record not found")
		return
	}
	if err != nil {
		rs.internalError(w, "replacing record", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (rs *Resource[T, PT]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := rs.collection.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, rs.name+" record not found")
		return
	}
	if err != nil {
		rs.internalError(w, "deleting record", err)
		return
	}
	respondJSON(w, http.StatusOK, messageBody{Message: fmt.Sprintf("deleted %s record %s", rs.name, id)})
}

// decodeBody parses and strictly decodes the request body into a fresh
// entity. It writes the error response itself and reports success.
func (rs *Resource[T, PT]) decodeBody(w http.ResponseWriter, r *http.Request) (PT, bool) {
	entity := PT(new(T))

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(entity); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "request body is empty")
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return nil, false
	}
	return entity, true
}

func (rs *Resource[T, PT]) internalError(w http.ResponseWriter, op string, err error) {
	rs.logger.Error(op, "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
