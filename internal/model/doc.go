// Package model declares the nine dashboard entity types and the identifier
// plumbing they share.
//
// Every entity embeds [Record], which holds the store-assigned identifier and
// satisfies [Entity]. Field rules are declared once as `validate` struct tags
// and enforced identically by the form controller before submission and by
// the API before persistence (see the schema package). JSON tags fix the wire
// field names the browser dashboard reconciles on, including the "_id"
// identifier key.
//
// Products own an ordered slice of [ProductStat] and line series own a slice
// of [LinePoint]; neither sub-record has independent identity.
package model
