// Package query serialises form-state snapshots into deterministic,
// percent-encoded query strings and decodes them back into typed edits.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/state"
)

// Synthesize renders st as name=value pairs joined by "&", following the
// declaration order of s. Every parameter appears exactly once, including
// those still at their default. Equal snapshots always yield identical output.
func Synthesize(st state.State, s *schema.Schema) string {
	var b strings.Builder
	for i, def := range s.Definitions() {
		if i > 0 {
			b.WriteByte('&')
		}
		value, ok := st.Get(def.Name)
		if !ok {
			value = schema.DefaultValue(def)
		}
		b.WriteString(url.QueryEscape(def.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(FormatValue(value)))
	}
	return b.String()
}

// FormatValue returns the canonical string form of a state value: "true" or
// "false" for booleans, the shortest round-tripping decimal for numbers, and
// strings unchanged.
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == 0 {
			v = 0
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		if f, ok := schema.ToFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return fmt.Sprint(v)
	}
}

// Decode parses raw into typed edits for the parameters of s. Keys outside the
// schema are ignored; the first value wins for repeated keys. Malformed numbers
// or booleans produce an error naming the parameter.
func Decode(raw string, s *schema.Schema) (map[string]any, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, fmt.Errorf("query: parse: %w", err)
	}

	edits := make(map[string]any, len(values))
	for _, def := range s.Definitions() {
		if !values.Has(def.Name) {
			continue
		}
		rawValue := values.Get(def.Name)
		switch def.Type {
		case schema.ValueTypeText:
			edits[def.Name] = rawValue
		case schema.ValueTypeCheckbox:
			b, err := strconv.ParseBool(rawValue)
			if err != nil {
				return nil, fmt.Errorf("query: %s: invalid boolean %q", def.Name, rawValue)
			}
			edits[def.Name] = b
		case schema.ValueTypeNumber, schema.ValueTypeRange:
			f, err := strconv.ParseFloat(rawValue, 64)
			if err != nil {
				return nil, fmt.Errorf("query: %s: invalid number %q", def.Name, rawValue)
			}
			if _, ok := schema.ToFloat(f); !ok {
				return nil, fmt.Errorf("query: %s: non-finite number %q", def.Name, rawValue)
			}
			edits[def.Name] = f
		}
	}
	return edits, nil
}

// Restore rebuilds a snapshot from raw, starting from the schema defaults.
func Restore(raw string, s *schema.Schema) (state.State, error) {
	edits, err := Decode(raw, s)
	if err != nil {
		return state.Initialize(s), err
	}
	return state.Update(state.Initialize(s), edits)
}
