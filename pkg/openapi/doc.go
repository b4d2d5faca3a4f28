// Package openapi describes a panel's request target as an OpenAPI 3 document:
// a single GET operation on the base path whose query parameters mirror the
// schema, in declaration order, with types, bounds and defaults. Generation
// services can publish it and clients can validate targets against it.
package openapi
