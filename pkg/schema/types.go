package schema

// ValueType is the simplified enum for panel-friendly parameter kinds.
type ValueType string

const (
	ValueTypeText     ValueType = "text"
	ValueTypeNumber   ValueType = "number"
	ValueTypeCheckbox ValueType = "checkbox"
	ValueTypeRange    ValueType = "range"
)

// Valid reports whether t is one of the known value types.
func (t ValueType) Valid() bool {
	switch t {
	case ValueTypeText, ValueTypeNumber, ValueTypeCheckbox, ValueTypeRange:
		return true
	default:
		return false
	}
}

// Numeric reports whether values of this type are stored as float64.
func (t ValueType) Numeric() bool {
	return t == ValueTypeNumber || t == ValueTypeRange
}

// Definition describes one tunable parameter. Min and Max are only meaningful
// for ValueTypeRange; Default may be nil, in which case the canonical zero
// value for the type applies (see DefaultValue).
type Definition struct {
	Name    string    `json:"name" yaml:"name"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Type    ValueType `json:"type" yaml:"type"`
	Default any       `json:"default,omitempty" yaml:"default,omitempty"`
	Min     *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// DisplayLabel returns the label, falling back to the parameter name.
func (d Definition) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// Text builds a text definition.
func Text(name, label string) Definition {
	return Definition{Name: name, Label: label, Type: ValueTypeText}
}

// Number builds a number definition with an explicit default.
func Number(name, label string, def float64) Definition {
	return Definition{Name: name, Label: label, Type: ValueTypeNumber, Default: def}
}

// Checkbox builds a checkbox definition defaulting to false.
func Checkbox(name, label string) Definition {
	return Definition{Name: name, Label: label, Type: ValueTypeCheckbox}
}

// Range builds a bounded numeric definition. Use WithDefault to override the
// midpoint default.
func Range(name, label string, min, max float64) Definition {
	return Definition{Name: name, Label: label, Type: ValueTypeRange, Min: &min, Max: &max}
}

// WithDefault returns a copy of d carrying the supplied default.
func (d Definition) WithDefault(value any) Definition {
	d.Default = value
	return d
}

func (d Definition) clone() Definition {
	if d.Min != nil {
		v := *d.Min
		d.Min = &v
	}
	if d.Max != nil {
		v := *d.Max
		d.Max = &v
	}
	return d
}
