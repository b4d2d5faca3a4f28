package state

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaViolation matches every *SchemaViolationError via errors.Is.
var ErrSchemaViolation = errors.New("state: schema violation")

// SchemaViolationError reports the edits that caused an update to be rejected.
// Unknown lists names absent from the schema; Mismatched lists names whose
// value cannot represent the parameter's type.
type SchemaViolationError struct {
	Unknown    []string
	Mismatched []string
}

func (e *SchemaViolationError) Error() string {
	var parts []string
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown parameters %s", strings.Join(e.Unknown, ", ")))
	}
	if len(e.Mismatched) > 0 {
		parts = append(parts, fmt.Sprintf("mismatched values for %s", strings.Join(e.Mismatched, ", ")))
	}
	return "state: schema violation: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrSchemaViolation) match.
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}
