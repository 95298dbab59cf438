// Package client is the Go-side counterpart of the dashboard's HTTP API.
//
// A Client holds the base URL and transport; a generic Resource gives typed
// List/Get/Create/Update/Delete access to one collection. NewDashboard
// bundles an accessor for all nine collections:
//
//	dash := client.NewDashboard(client.New("http://localhost:8080"))
//	member, err := dash.Team.Create(ctx, &model.TeamMember{...})
//
// # Errors
//
// Responses the server produced deliberately (404, 422, 500) surface as
// *APIError carrying the status, message, and any field violations.
// Transport failures are wrapped ordinary errors, so the form layer can
// distinguish "the server rejected this" from "the server is unreachable".
package client
