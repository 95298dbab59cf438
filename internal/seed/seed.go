// ABOUTME: Demo dataset loading for fresh deployments
// ABOUTME: Parses embedded TOML fixtures, validates them, and fills the store

package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"

	"github.com/cleverdash/dash-gateway/internal/api"
	"github.com/cleverdash/dash-gateway/internal/model"
	"github.com/cleverdash/dash-gateway/internal/schema"
	"github.com/cleverdash/dash-gateway/internal/store"
)

// ErrAlreadySeeded is returned when any target collection holds records.
// Seeding never merges into existing data.
var ErrAlreadySeeded = errors.New("store already contains records")

//go:embed fixtures.toml
var fixturesTOML []byte

// Fixtures is the full demo dataset, one slice per collection.
type Fixtures struct {
	Team      []model.TeamMember     `toml:"team"`
	Contacts  []model.Contact        `toml:"contacts"`
	Invoices  []model.Invoice        `toml:"invoices"`
	Products  []model.Product        `toml:"products"`
	Calendar  []model.Event          `toml:"calendar"`
	BarChart  []model.BarEntry       `toml:"barChart"`
	PieChart  []model.PieEntry       `toml:"pieChart"`
	LineChart []model.LineEntry      `toml:"lineChart"`
	Geography []model.GeographyEntry `toml:"geographyChart"`
}

// Load parses the embedded fixtures and checks every record against the
// shared field rules. A fixture that would be rejected by the API is a
// build-time mistake, so Load fails loudly rather than skip it.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := toml.Unmarshal(fixturesTOML, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}

	if err := errors.Join(
		validateAll(api.PathTeam, f.Team),
		validateAll(api.PathContacts, f.Contacts),
		validateAll(api.PathInvoices, f.Invoices),
		validateAll(api.PathProducts, f.Products),
		validateAll(api.PathCalendar, f.Calendar),
		validateAll(api.PathBarChart, f.BarChart),
		validateAll(api.PathPieChart, f.PieChart),
		validateAll(api.PathLineChart, f.LineChart),
		validateAll(api.PathGeography, f.Geography),
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func validateAll[T any](collection string, entities []T) error {
	for i := range entities {
		if violations := schema.Validate(&entities[i]); violations != nil {
			return fmt.Errorf("fixture %s[%d]: invalid fields %v", collection, i, violations.Fields())
		}
	}
	return nil
}

// Apply inserts the fixtures into the store and returns the record count.
// It refuses to run against a store that already holds records in any
// target collection.
func Apply(ctx context.Context, s store.Store, f *Fixtures) (int, error) {
	logger := slog.Default().With("component", "seed")

	collections := []string{
		api.PathTeam, api.PathContacts, api.PathInvoices, api.PathProducts,
		api.PathCalendar, api.PathBarChart, api.PathPieChart,
		api.PathLineChart, api.PathGeography,
	}
	for _, name := range collections {
		docs, err := s.List(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("inspecting %s: %w", name, err)
		}
		if len(docs) > 0 {
			return 0, fmt.Errorf("%w: %s has %d records", ErrAlreadySeeded, name, len(docs))
		}
	}

	total := 0
	for _, insert := range []func() (int, error){
		func() (int, error) { return insertAll(ctx, s, api.PathTeam, f.Team) },
		func() (int, error) { return insertAll(ctx, s, api.PathContacts, f.Contacts) },
		func() (int, error) { return insertAll(ctx, s, api.PathInvoices, f.Invoices) },
		func() (int, error) { return insertAll(ctx, s, api.PathProducts, f.Products) },
		func() (int, error) { return insertAll(ctx, s, api.PathCalendar, f.Calendar) },
		func() (int, error) { return insertAll(ctx, s, api.PathBarChart, f.BarChart) },
		func() (int, error) { return insertAll(ctx, s, api.PathPieChart, f.PieChart) },
		func() (int, error) { return insertAll(ctx, s, api.PathLineChart, f.LineChart) },
		func() (int, error) { return insertAll(ctx, s, api.PathGeography, f.Geography) },
	} {
		n, err := insert()
		if err != nil {
			return total, err
		}
		total += n
	}
	logger.Info("seeded store", "records", total)
	return total, nil
}

func insertAll[T any, PT model.Doc[T]](ctx context.Context, s store.Store, name string, entities []T) (int, error) {
	collection := store.NewCollection[T, PT](s, name)
	for i := range entities {
		if _, err := collection.Insert(ctx, &entities[i]); err != nil {
			return i, fmt.Errorf("seeding %s[%d]: %w", name, i, err)
		}
	}
	return len(entities), nil
}
