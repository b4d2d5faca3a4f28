// Package state holds immutable form-state snapshots and the Store that owns
// the current snapshot of one form instance.
package state

import (
	"sort"

	"github.com/goliatone/go-paramform/pkg/schema"
)

// State is an immutable snapshot mapping every schema parameter to its current
// value. The zero value is an empty snapshot with no schema.
type State struct {
	schema *schema.Schema
	values map[string]any
}

// Initialize returns the defaults snapshot for s.
func Initialize(s *schema.Schema) State {
	return State{schema: s, values: s.Defaults()}
}

// Update returns a new snapshot with every key in edits replaced and all other
// keys copied. When any edit names a parameter outside the schema, or carries a
// value that cannot represent the parameter's type, the whole update is
// rejected with a *SchemaViolationError and the input snapshot is returned
// unchanged.
func Update(current State, edits map[string]any) (State, error) {
	if len(edits) == 0 {
		return current, nil
	}

	var violation SchemaViolationError
	normalised := make(map[string]any, len(edits))
	for name, raw := range edits {
		def, ok := current.schema.Lookup(name)
		if !ok {
			violation.Unknown = append(violation.Unknown, name)
			continue
		}
		value, ok := schema.Coerce(def, raw)
		if !ok {
			violation.Mismatched = append(violation.Mismatched, name)
			continue
		}
		normalised[name] = value
	}
	if len(violation.Unknown) > 0 || len(violation.Mismatched) > 0 {
		sort.Strings(violation.Unknown)
		sort.Strings(violation.Mismatched)
		return current, &violation
	}

	next := State{
		schema: current.schema,
		values: make(map[string]any, len(current.values)),
	}
	for name, value := range current.values {
		next.values[name] = value
	}
	for name, value := range normalised {
		next.values[name] = value
	}
	return next, nil
}

// Schema returns the schema the snapshot was built from.
func (s State) Schema() *schema.Schema {
	return s.schema
}

// Get returns the value stored for name.
func (s State) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Values returns a copy of the snapshot's values.
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Len reports the number of parameters held.
func (s State) Len() int {
	return len(s.values)
}

// Equal reports value equality: identical values over the same *schema.Schema.
// Schema identity is compared by pointer, so snapshots built from two
// separately constructed schemas are never equal even when their definitions
// and values match. Memoizing callers should share one schema per form.
func (s State) Equal(other State) bool {
	if s.schema != other.schema || len(s.values) != len(other.values) {
		return false
	}
	for name, value := range s.values {
		ov, ok := other.values[name]
		if !ok || ov != value {
			return false
		}
	}
	return true
}
