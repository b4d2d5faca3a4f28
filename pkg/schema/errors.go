package schema

import "errors"

var (
	// ErrInvalidDefinition is returned (wrapped with the parameter name) when a
	// definition breaks a schema invariant.
	ErrInvalidDefinition = errors.New("schema: invalid definition")
	// ErrDuplicateName signals two definitions share a name.
	ErrDuplicateName = errors.New("schema: duplicate parameter name")
)
