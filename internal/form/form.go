// ABOUTME: Form controller driving the add/edit lifecycle for one collection
// ABOUTME: Validates drafts locally before any network call is made

package form

import (
	"context"
	"errors"
	"sync"

	"github.com/cleverdash/dash-gateway/internal/client"
	"github.com/cleverdash/dash-gateway/internal/model"
	"github.com/cleverdash/dash-gateway/internal/schema"
)

// State is the form's position in its lifecycle.
type State int

const (
	// StateIdle means no form is open.
	StateIdle State = iota
	// StateEditing means a draft is open and accepting field changes.
	StateEditing
	// StateSubmitting means a network call is in flight. Field changes and
	// further submissions are rejected until it resolves.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	// ErrNotEditing is returned when Submit is called with no open draft.
	ErrNotEditing = errors.New("no draft open")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("submission already in flight")
	// ErrInvalid is returned when the draft fails local validation.
	// Violations carries the per-field reasons.
	ErrInvalid = errors.New("draft failed validation")
)

// Form drives the add/edit lifecycle for one collection. It keeps the
// loaded record list, reconciles it after every successful call, and runs
// the shared field rules over drafts before the server is contacted, so a
// locally invalid draft never generates a request.
type Form[T any, PT model.Doc[T]] struct {
	mu       sync.Mutex
	resource *client.Resource[T, PT]

	state      State
	draft      PT
	editID     string
	records    []PT
	violations schema.Violations
}

// New builds a form controller over the given resource accessor.
func New[T any, PT model.Doc[T]](resource *client.Resource[T, PT]) *Form[T, PT] {
	return &Form[T, PT]{resource: resource}
}

// Load fetches the collection and replaces the local record list.
func (f *Form[T, PT]) Load(ctx context.Context) error {
	records, err := f.resource.List(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.records = records
	f.mu.Unlock()
	return nil
}

// Records returns a copy of the local record list.
func (f *Form[T, PT]) Records() []PT {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PT, len(f.records))
	copy(out, f.records)
	return out
}

// State returns the current lifecycle state.
func (f *Form[T, PT]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Violations returns the field problems from the last failed submission,
// or nil.
func (f *Form[T, PT]) Violations() schema.Violations {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.violations
}

// OpenAdd opens an empty draft for a new record. A nil defaults starts from
// the zero value.
func (f *Form[T, PT]) OpenAdd(defaults PT) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrBusy
	}
	if defaults == nil {
		defaults = PT(new(T))
	}
	defaults.SetRecordID("")
	f.draft = defaults
	f.editID = ""
	f.state = StateEditing
	f.violations = nil
	return nil
}

// OpenEdit opens a draft prefilled from an existing record. The record's
// identifier determines which server record Submit will replace.
func (f *Form[T, PT]) OpenEdit(record PT) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrBusy
	}
	if record == nil || record.RecordID() == "" {
		return errors.New("record has no identifier")
	}
	draft := PT(new(T))
	*draft = *record
	f.draft = draft
	f.editID = record.RecordID()
	f.state = StateEditing
	f.violations = nil
	return nil
}

// Draft returns the open draft for field edits, or nil when no form is open.
func (f *Form[T, PT]) Draft() PT {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return nil
	}
	return f.draft
}

// Cancel discards the open draft.
func (f *Form[T, PT]) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrBusy
	}
	f.draft = nil
	f.editID = ""
	f.state = StateIdle
	f.violations = nil
	return nil
}

// Submit validates the draft and sends it to the server. Local rule
// failures return ErrInvalid without a network call. A server-side
// validation rejection also records its violations and reopens the draft.
// On success the record list is reconciled and the form returns to idle.
func (f *Form[T, PT]) Submit(ctx context.Context) (PT, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrBusy
	case StateIdle:
		f.mu.Unlock()
		return nil, ErrNotEditing
	}

	draft := f.draft
	editID := f.editID

	if violations := schema.Validate(draft); violations != nil {
		f.violations = violations
		f.mu.Unlock()
		return nil, ErrInvalid
	}

	f.state = StateSubmitting
	f.violations = nil
	f.mu.Unlock()

	var (
		saved PT
		err   error
	)
	if editID == "" {
		saved, err = f.resource.Create(ctx, draft)
	} else {
		saved, err = f.resource.Update(ctx, editID, draft)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// Reopen the draft so the user can correct and resubmit.
		f.state = StateEditing
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
			f.violations = apiErr.Fields
		}
		return nil, err
	}

	if editID == "" {
		f.records = appendRecord(f.records, saved)
	} else {
		f.records = replaceByID(f.records, saved)
	}
	f.draft = nil
	f.editID = ""
	f.state = StateIdle
	return saved, nil
}

// Delete removes a record on the server and drops it from the local list.
// The open draft, if any, is untouched.
func (f *Form[T, PT]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	prior := f.state
	f.state = StateSubmitting
	f.mu.Unlock()

	_, err := f.resource.Delete(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = prior
	if err != nil {
		return err
	}
	f.records = removeByID[T, PT](f.records, id)
	return nil
}
