// Package schema validates dashboard entities against the field rules
// declared on their struct tags.
//
// The rules live in one place (the model package's `validate` tags) and this
// package is the single gate that interprets them, so the pre-submit check in
// the form controller and the pre-persist check in the API can never drift
// apart.
//
// # Rules
//
// Beyond the stock validator rules (required, email, oneof, gt, gte, lte,
// datetime), the package registers:
//
//   - phone: exactly ten digits, e.g. "6651215454"
//
// # Output
//
// Validate returns nil for a valid entity, or a Violations map keyed by the
// JSON wire name of each offending field:
//
//	if v := schema.Validate(member); v != nil {
//	    // v == Violations{"email": "must be a valid email address"}
//	}
//
// Nested sub-record failures keep their path, e.g. "stat[0].yearlySalesTotal".
package schema
