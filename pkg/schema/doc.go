// Package schema defines the declarative parameter schema behind a control
// panel. A Schema is an ordered, immutable list of Definitions; declaration
// order drives both binding order and query field order. Construction validates
// every definition up front so an invalid Range (missing or inverted bounds, a
// default outside the bounds) fails when the schema is built rather than when
// a value is first read.
package schema
