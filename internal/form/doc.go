// Package form drives the add/edit lifecycle the dashboard grids use.
//
// A Form wraps one collection's typed resource accessor and moves through
// three states: idle, editing (a draft is open), and submitting (a network
// call is in flight). Drafts are checked against the shared field rules
// before any request leaves the process; a locally invalid draft costs no
// network round trip. While a submission is in flight every other
// operation returns ErrBusy, so a double-clicked save button cannot create
// a record twice.
//
// After a successful call the local record list is reconciled in place:
// creates append, updates replace by identifier, deletes remove. The
// reconciliation helpers are pure and never mutate their input slice.
package form
