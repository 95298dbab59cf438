// ABOUTME: Generic typed accessor for one server collection
// ABOUTME: Dashboard bundles the nine accessors the UI layer works with

package client

import (
	"context"
	"net/url"

	"github.com/cleverdash/dash-gateway/internal/api"
	"github.com/cleverdash/dash-gateway/internal/model"
)

// Resource gives typed access to one collection's five operations.
type Resource[T any, PT model.Doc[T]] struct {
	client *Client
	base   string
}

// NewResource builds an accessor for the collection at /<name>.
func NewResource[T any, PT model.Doc[T]](c *Client, name string) *Resource[T, PT] {
	return &Resource[T, PT]{client: c, base: "/" + name}
}

// List fetches every record in the collection.
func (r *Resource[T, PT]) List(ctx context.Context) ([]PT, error) {
	var out []PT
	if err := r.client.doRequest(ctx, "GET", r.base, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single record by its identifier.
func (r *Resource[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	out := PT(new(T))
	if err := r.client.doRequest(ctx, "GET", r.base+"/"+url.PathEscape(id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits a new record and returns the stored copy, identifier
// attached.
func (r *Resource[T, PT]) Create(ctx context.Context, entity PT) (PT, error) {
	out := PT(new(T))
	if err := r.client.doRequest(ctx, "POST", r.base, entity, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the record with the given identifier.
func (r *Resource[T, PT]) Update(ctx context.Context, id string, entity PT) (PT, error) {
	out := PT(new(T))
	if err := r.client.doRequest(ctx, "PUT", r.base+"/"+url.PathEscape(id), entity, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record with the given identifier and returns the
// server's acknowledgment message.
func (r *Resource[T, PT]) Delete(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := r.client.doRequest(ctx, "DELETE", r.base+"/"+url.PathEscape(id), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Dashboard bundles a typed accessor for every collection the server
// exposes, built from the same path names the router mounts.
type Dashboard struct {
	Team      *Resource[model.TeamMember, *model.TeamMember]
	Contacts  *Resource[model.Contact, *model.Contact]
	Invoices  *Resource[model.Invoice, *model.Invoice]
	Products  *Resource[model.Product, *model.Product]
	Calendar  *Resource[model.Event, *model.Event]
	BarChart  *Resource[model.BarEntry, *model.BarEntry]
	PieChart  *Resource[model.PieEntry, *model.PieEntry]
	LineChart *Resource[model.LineEntry, *model.LineEntry]
	Geography *Resource[model.GeographyEntry, *model.GeographyEntry]
}

// NewDashboard builds the full accessor set over one base client.
func NewDashboard(c *Client) *Dashboard {
	return &Dashboard{
		Team:      NewResource[model.TeamMember](c, api.PathTeam),
		Contacts:  NewResource[model.Contact](c, api.PathContacts),
		Invoices:  NewResource[model.Invoice](c, api.PathInvoices),
		Products:  NewResource[model.Product](c, api.PathProducts),
		Calendar:  NewResource[model.Event](c, api.PathCalendar),
		BarChart:  NewResource[model.BarEntry](c, api.PathBarChart),
		PieChart:  NewResource[model.PieEntry](c, api.PathPieChart),
		LineChart: NewResource[model.LineEntry](c, api.PathLineChart),
		Geography: NewResource[model.GeographyEntry](c, api.PathGeography),
	}
}
