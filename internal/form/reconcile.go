// ABOUTME: Pure list reconciliation helpers used after successful submissions
// ABOUTME: Each returns a new slice and never mutates its input

package form

import "github.com/cleverdash/dash-gateway/internal/model"

// appendRecord returns records with the new record added at the end.
func appendRecord[T any, PT model.Doc[T]](records []PT, record PT) []PT {
	out := make([]PT, 0, len(records)+1)
	out = append(out, records...)
	return append(out, record)
}

// replaceByID returns records with the entry matching record's identifier
// swapped for record. Position is preserved; an unmatched identifier leaves
// the list unchanged.
func replaceByID[T any, PT model.Doc[T]](records []PT, record PT) []PT {
	out := make([]PT, len(records))
	copy(out, records)
	for i, r := range out {
		if r.RecordID() == record.RecordID() {
			out[i] = record
			break
		}
	}
	return out
}

// removeByID returns records without the entry carrying the identifier.
func removeByID[T any, PT model.Doc[T]](records []PT, id string) []PT {
	out := make([]PT, 0, len(records))
	for _, r := range records {
		if r.RecordID() != id {
			out = append(out, r)
		}
	}
	return out
}
