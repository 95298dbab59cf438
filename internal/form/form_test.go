// ABOUTME: Form lifecycle tests over a real server and in-memory store
// ABOUTME: Covers local validation gating, busy rejection, and reconciliation

package form

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleverdash/dash-gateway/internal/api"
	"github.com/cleverdash/dash-gateway/internal/client"
	"github.com/cleverdash/dash-gateway/internal/model"
	"github.com/cleverdash/dash-gateway/internal/store"
)

func newTeamForm(t *testing.T) (*Form[model.TeamMember, *model.TeamMember], *client.Client) {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(store.NewMemoryStore(), nil))
	t.Cleanup(srv.Close)
	c := client.New(srv.URL)
	return New(client.NewResource[model.TeamMember](c, api.PathTeam)), c
}

func validDraft() *model.TeamMember {
	return &model.TeamMember{
		Name:        "Jon Snow",
		Email:       "jonsnow@gmail.com",
		Age:         35,
		Phone:       "6651215454",
		AccessLevel: model.AccessAdmin,
	}
}

func TestForm_AddLifecycle(t *testing.T) {
	f, _ := newTeamForm(t)
	ctx := context.Background()

	assert.Equal(t, StateIdle, f.State())
	require.NoError(t, f.OpenAdd(validDraft()))
	assert.Equal(t, StateEditing, f.State())

	saved, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.RecordID())
	assert.Equal(t, StateIdle, f.State())

	records := f.Records()
	require.Len(t, records, 1)
	assert.Equal(t, saved.RecordID(), records[0].RecordID())
}

func TestForm_LocalValidationBlocksNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server despite an invalid draft")
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	f := New(client.NewResource[model.TeamMember](c, api.PathTeam))

	draft := validDraft()
	draft.Email = "not-an-email"
	require.NoError(t, f.OpenAdd(draft))

	_, err := f.Submit(context.Background())
	require.True(t, errors.Is(err, ErrInvalid), "got %v", err)
	assert.Contains(t, f.Violations(), "email")

	// The draft stays open for correction.
	assert.Equal(t, StateEditing, f.State())
	require.NotNil(t, f.Draft())
}

func TestForm_EditReconcilesInPlace(t *testing.T) {
	f, _ := newTeamForm(t)
	ctx := context.Background()

	// Seed two records through the form.
	for _, name := range []string{"Jon Snow", "Cersei Lannister"} {
		d := validDraft()
		d.Name = name
		require.NoError(t, f.OpenAdd(d))
		_, err := f.Submit(ctx)
		require.NoError(t, err)
	}
	records := f.Records()
	require.Len(t, records, 2)

	// Edit the first record.
	require.NoError(t, f.OpenEdit(records[0]))
	f.Draft().AccessLevel = model.AccessManager
	saved, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, records[0].RecordID(), saved.RecordID())

	after := f.Records()
	require.Len(t, after, 2)
	assert.Equal(t, model.AccessManager, after[0].AccessLevel)
	assert.Equal(t, records[0].RecordID(), after[0].RecordID(), "position preserved")
	assert.Equal(t, model.AccessAdmin, after[1].AccessLevel)
}

func TestForm_DeleteReconciles(t *testing.T) {
	f, _ := newTeamForm(t)
	ctx := context.Background()

	require.NoError(t, f.OpenAdd(validDraft()))
	saved, err := f.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, f.Delete(ctx, saved.RecordID()))
	assert.Empty(t, f.Records())

	// Deleting again surfaces the server 404.
	err = f.Delete(ctx, saved.RecordID())
	assert.True(t, client.IsNotFound(err), "got %v", err)
}

func TestForm_SubmitWithoutDraft(t *testing.T) {
	f, _ := newTeamForm(t)
	_, err := f.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrNotEditing))
}

func TestForm_RejectsConcurrentSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(entered)
		}
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"abc123","name":"Jon Snow","email":"jonsnow@gmail.com","age":35,"phone":"6651215454","accessLevel":"Admin"}`))
	}))
	t.Cleanup(srv.Close)

	f := New(client.NewResource[model.TeamMember](client.New(srv.URL), api.PathTeam))
	require.NoError(t, f.OpenAdd(validDraft()))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	// Wait until the first submission is parked inside the handler.
	<-entered

	_, err := f.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrBusy), "got %v", err)
	assert.True(t, errors.Is(f.Delete(context.Background(), "abc123"), ErrBusy))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), hits.Load())
}

func TestForm_ServerRejectionReopensDraft(t *testing.T) {
	// Local rules pass but the server still rejects; its violations surface.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"validation failed","fields":{"email":"is already taken"}}`))
	}))
	t.Cleanup(srv.Close)

	f := New(client.NewResource[model.TeamMember](client.New(srv.URL), api.PathTeam))
	require.NoError(t, f.OpenAdd(validDraft()))

	_, err := f.Submit(context.Background())
	require.True(t, client.IsValidation(err), "got %v", err)
	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, "is already taken", f.Violations()["email"])
}

func TestReconcileHelpers(t *testing.T) {
	mk := func(id, name string) *model.TeamMember {
		m := &model.TeamMember{Name: name}
		m.SetRecordID(id)
		return m
	}
	records := []*model.TeamMember{mk("a", "one"), mk("b", "two")}

	appended := appendRecord(records, mk("c", "three"))
	if len(appended) != 3 || appended[2].RecordID() != "c" {
		t.Errorf("appendRecord: got %d records", len(appended))
	}
	if len(records) != 2 {
		t.Errorf("appendRecord mutated its input")
	}

	replaced := replaceByID(records, mk("b", "TWO"))
	if replaced[1].Name != "TWO" || records[1].Name != "two" {
		t.Errorf("replaceByID: got %q / input %q", replaced[1].Name, records[1].Name)
	}

	unmatched := replaceByID(records, mk("zzz", "ghost"))
	if len(unmatched) != 2 || unmatched[0].Name != "one" || unmatched[1].Name != "two" {
		t.Errorf("replaceByID with unknown id changed the list")
	}

	removed := removeByID[model.TeamMember](records, "a")
	if len(removed) != 1 || removed[0].RecordID() != "b" {
		t.Errorf("removeByID: got %d records", len(removed))
	}
}
