// ABOUTME: JSON response helpers shared by every resource handler
// ABOUTME: Keeps the error envelope identical across all nine entities

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cleverdash/dash-gateway/internal/schema"
)

// errorBody is the uniform error envelope. Fields is only present on
// validation failures, where it names every rejected field.
type errorBody struct {
	Error  string            `json:"error"`
	Fields schema.Violations `json:"fields,omitempty"`
}

// messageBody carries the confirmation payload for destructive operations.
type messageBody struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

func respondViolations(w http.ResponseWriter, violations schema.Violations) {
	respondJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error:  "validation failed",
		Fields: violations,
	})
}
