// Package api exposes the dashboard's collections over HTTP.
//
// Every collection is served by the same generic resource controller,
// instantiated once per entity type in NewRouter. A controller offers five
// operations under its collection path:
//
//	GET    /{collection}        list every record
//	POST   /{collection}        validate and create a record
//	GET    /{collection}/{id}   fetch one record
//	PUT    /{collection}/{id}   validate and replace a record
//	DELETE /{collection}/{id}   delete a record
//
// # Response contract
//
// Successful reads and writes return the record (or record list) as JSON.
// Create returns 201, everything else 200. Failures use one envelope:
//
//	{"error": "validation failed", "fields": {"rating": "must be at most 5"}}
//
// where "fields" appears only on 422 validation failures. Unknown records
// yield 404, malformed bodies 400, and store failures a logged 500 with a
// generic message so internal details never reach the browser.
//
// # Validation
//
// Create and Update run schema.Validate before touching the store. A
// payload that fails any field rule is rejected in full; partially valid
// records are never persisted.
package api
