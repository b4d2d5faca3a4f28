// Package schemafile loads parameter schemas from JSON or YAML documents so a
// panel can be described outside Go code. A document lists parameters in the
// order they should appear in bindings and query strings, plus an optional base
// path for request targets:
//
//	basePath: /generate
//	parameters:
//	  - name: partsize
//	    label: Part Size
//	    type: range
//	    min: 0
//	    max: 500
//	    default: 100
package schemafile
