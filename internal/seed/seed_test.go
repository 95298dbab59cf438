// ABOUTME: Tests for fixture parsing and store seeding
// ABOUTME: Ensures fixtures stay valid and double-seeding is refused

package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleverdash/dash-gateway/internal/api"
	"github.com/cleverdash/dash-gateway/internal/model"
	"github.com/cleverdash/dash-gateway/internal/store"
)

func TestLoad(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	// Every collection ships at least one record.
	assert.NotEmpty(t, f.Team)
	assert.NotEmpty(t, f.Contacts)
	assert.NotEmpty(t, f.Invoices)
	assert.NotEmpty(t, f.Products)
	assert.NotEmpty(t, f.Calendar)
	assert.NotEmpty(t, f.BarChart)
	assert.NotEmpty(t, f.PieChart)
	assert.NotEmpty(t, f.LineChart)
	assert.NotEmpty(t, f.Geography)

	// Nested structures survive the TOML round trip.
	require.NotEmpty(t, f.Products[0].Stat)
	require.NotNil(t, f.Products[0].Stat[0].YearlySalesTotal)
	require.NotEmpty(t, f.LineChart[0].Data)

	// Chart keys land in the data field, never the record identifier.
	assert.Equal(t, "hack", f.PieChart[0].Key)
	assert.Empty(t, f.PieChart[0].RecordID())
}

func TestApply(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	s := store.NewMemoryStore()
	ctx := context.Background()

	n, err := Apply(ctx, s, f)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	// Seeded records are readable through the typed layer.
	team := store.NewCollection[model.TeamMember](s, api.PathTeam)
	members, err := team.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, len(f.Team))
	assert.NotEmpty(t, members[0].RecordID())

	docs, err := s.List(ctx, api.PathGeography)
	require.NoError(t, err)
	assert.Len(t, docs, len(f.Geography))
}

func TestApplyRefusesSecondRun(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	s := store.NewMemoryStore()
	ctx := context.Background()

	_, err = Apply(ctx, s, f)
	require.NoError(t, err)

	_, err = Apply(ctx, s, f)
	assert.True(t, errors.Is(err, ErrAlreadySeeded), "got %v", err)
}

func TestApplyRefusesPartialStore(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	s := store.NewMemoryStore()
	ctx := context.Background()

	// One pre-existing record in any collection blocks seeding entirely.
	events := store.NewCollection[model.Event](s, api.PathCalendar)
	_, err = events.Insert(ctx, &model.Event{Title: "Standup", Date: "2024-01-08"})
	require.NoError(t, err)

	_, err = Apply(ctx, s, f)
	require.True(t, errors.Is(err, ErrAlreadySeeded), "got %v", err)

	// Nothing else was written.
	docs, err := s.List(ctx, api.PathTeam)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
