package paramform

import "github.com/goliatone/go-paramform/pkg/schema"

// DefaultBasePath is the generation endpoint the stereogram panel targets.
const DefaultBasePath = "/generate"

var stereogramSchema = schema.MustNew(
	schema.Text("src", "Depth Map"),
	schema.Text("pat", "Pattern"),
	schema.Number("seed", "Seed", 0),
	schema.Range("partsize", "Part Size", 0, 500).WithDefault(100),
	schema.Range("depth", "Max Depth", 0, 50).WithDefault(40),
	schema.Checkbox("sym", "Symmetric Random Generation"),
	schema.Checkbox("inverse", "Inverse"),
	schema.Checkbox("flat", "Flat"),
)

// StereogramSchema returns the fixed parameter set of the stereogram panel:
// depth map and pattern sources, the random pattern seed, part size and maximum
// depth ranges, and the symmetric/inverse/flat toggles.
func StereogramSchema() *schema.Schema {
	return stereogramSchema
}

// NewStereogramForm builds a form over StereogramSchema targeting
// DefaultBasePath unless overridden by options.
func NewStereogramForm(options ...FormOption) *Form {
	return NewForm(stereogramSchema, append([]FormOption{WithBasePath(DefaultBasePath)}, options...)...)
}
