package schema

import (
	"fmt"
	"math"
	"strings"
)

// Schema is an ordered, immutable set of parameter definitions.
type Schema struct {
	defs  []Definition
	index map[string]int
}

// New validates the definitions and returns a Schema preserving their order.
// Numeric defaults are normalised to float64.
func New(defs ...Definition) (*Schema, error) {
	s := &Schema{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, raw := range defs {
		def, err := normaliseDefinition(raw)
		if err != nil {
			return nil, err
		}
		if _, exists := s.index[def.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}
		s.index[def.Name] = len(s.defs)
		s.defs = append(s.defs, def)
	}
	return s, nil
}

// MustNew is New for package-level presets; it panics on invalid input.
func MustNew(defs ...Definition) *Schema {
	s, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Definitions returns a copy of the definitions in declaration order.
func (s *Schema) Definitions() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, len(s.defs))
	for i, def := range s.defs {
		out[i] = def.clone()
	}
	return out
}

// Names returns the parameter names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.defs))
	for i, def := range s.defs {
		out[i] = def.Name
	}
	return out
}

// Len reports the number of parameters.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}

// Lookup returns the definition registered under name.
func (s *Schema) Lookup(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Definition{}, false
	}
	return s.defs[idx].clone(), true
}

// Has reports whether name is part of the schema.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Defaults returns the default value of every parameter keyed by name.
func (s *Schema) Defaults() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s.defs))
	for _, def := range s.defs {
		out[def.Name] = DefaultValue(def)
	}
	return out
}

// DefaultValue resolves the starting value of a definition: the explicit
// default when present, otherwise "" for Text, 0 for Number, false for
// Checkbox and the midpoint of the bounds for Range.
func DefaultValue(def Definition) any {
	if def.Default != nil {
		if v, ok := Coerce(def, def.Default); ok {
			return v
		}
	}
	switch def.Type {
	case ValueTypeNumber:
		return float64(0)
	case ValueTypeCheckbox:
		return false
	case ValueTypeRange:
		if def.Min != nil && def.Max != nil {
			return (*def.Min + *def.Max) / 2
		}
		return float64(0)
	default:
		return ""
	}
}

// Coerce converts value to the runtime representation of def's type: string
// for Text, float64 for Number and Range, bool for Checkbox. The second result
// is false when the value cannot represent the type. Non-finite numbers are
// never accepted.
func Coerce(def Definition, value any) (any, bool) {
	switch def.Type {
	case ValueTypeText:
		s, ok := value.(string)
		return s, ok
	case ValueTypeCheckbox:
		b, ok := value.(bool)
		return b, ok
	case ValueTypeNumber, ValueTypeRange:
		f, ok := ToFloat(value)
		if !ok {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

// ToFloat normalises Go numeric kinds to a finite float64. Negative zero
// becomes zero so equal values always format the same way.
func ToFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f == 0 {
		f = 0
	}
	return f, true
}

func normaliseDefinition(def Definition) (Definition, error) {
	def = def.clone()
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return Definition{}, fmt.Errorf("%w: empty name", ErrInvalidDefinition)
	}
	if !def.Type.Valid() {
		return Definition{}, fmt.Errorf("%w: %q has unknown type %q", ErrInvalidDefinition, def.Name, def.Type)
	}

	if def.Type == ValueTypeRange {
		if def.Min == nil || def.Max == nil {
			return Definition{}, fmt.Errorf("%w: range %q requires min and max", ErrInvalidDefinition, def.Name)
		}
		if !isFinite(*def.Min) || !isFinite(*def.Max) || *def.Min >= *def.Max {
			return Definition{}, fmt.Errorf("%w: range %q requires min < max", ErrInvalidDefinition, def.Name)
		}
	} else {
		def.Min, def.Max = nil, nil
	}

	if def.Default == nil {
		return def, nil
	}
	value, ok := Coerce(def, def.Default)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q default %v does not match type %s", ErrInvalidDefinition, def.Name, def.Default, def.Type)
	}
	if def.Type == ValueTypeRange {
		f := value.(float64)
		if f < *def.Min || f > *def.Max {
			return Definition{}, fmt.Errorf("%w: range %q default %v outside [%v, %v]", ErrInvalidDefinition, def.Name, f, *def.Min, *def.Max)
		}
	}
	def.Default = value
	return def, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
