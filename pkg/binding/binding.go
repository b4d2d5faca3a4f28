// Package binding turns schema definitions into UI-facing bindings: the current
// value of a parameter paired with a validated commit handler. Bind and
// Binding.Commit are pure functions over state snapshots; Binder wires them to
// a state.Store for the event-driven form loop.
package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/state"
)

// Outcome reports whether a commit produced a new snapshot.
type Outcome string

const (
	Committed Outcome = "committed"
	Rejected  Outcome = "rejected"
)

// Binding is the UI-facing record for one parameter. Min and Max are only set
// for range parameters and are advisory; commits never clamp to them.
type Binding struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Type  schema.ValueType `json:"type"`
	Value any              `json:"value"`
	Min   *float64         `json:"min,omitempty"`
	Max   *float64         `json:"max,omitempty"`
}

// Bind builds the binding for def against st.
func Bind(st state.State, def schema.Definition) Binding {
	value, ok := st.Get(def.Name)
	if !ok {
		value = schema.DefaultValue(def)
	}
	return Binding{
		Name:  def.Name,
		Label: def.DisplayLabel(),
		Type:  def.Type,
		Value: value,
		Min:   def.Min,
		Max:   def.Max,
	}
}

// BindAll returns bindings for every parameter in schema order.
func BindAll(st state.State) []Binding {
	defs := st.Schema().Definitions()
	out := make([]Binding, 0, len(defs))
	for _, def := range defs {
		out = append(out, Bind(st, def))
	}
	return out
}

// Commit validates raw against the binding's type and returns the next
// snapshot. A Rejected outcome returns st unchanged.
func (b Binding) Commit(st state.State, raw any) (state.State, Outcome) {
	value, ok := b.Coerce(st, raw)
	if !ok {
		return st, Rejected
	}
	next, err := state.Update(st, map[string]any{b.Name: value})
	if err != nil {
		return st, Rejected
	}
	return next, Committed
}

// Coerce converts raw input into the value a commit would store.
//
// Text accepts any input verbatim. Number and Range require a finite float;
// strings are parsed after trimming whitespace. Checkbox always succeeds:
// booleans are taken as is, boolean literals are parsed, and any other input
// toggles the current value.
func (b Binding) Coerce(st state.State, raw any) (any, bool) {
	switch b.Type {
	case schema.ValueTypeText:
		if s, ok := raw.(string); ok {
			return s, true
		}
		return fmt.Sprint(raw), true
	case schema.ValueTypeNumber, schema.ValueTypeRange:
		return parseNumber(raw)
	case schema.ValueTypeCheckbox:
		return parseCheckbox(st, b.Name, raw), true
	default:
		return nil, false
	}
}

func parseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return schema.ToFloat(f)
	default:
		return schema.ToFloat(v)
	}
}

func parseCheckbox(st state.State, name string, raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	current, _ := st.Get(name)
	b, _ := current.(bool)
	return !b
}
