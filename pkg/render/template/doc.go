// Package template defines the template rendering seam panel renderers rely
// on. The gotemplate subpackage provides the pongo2-backed implementation.
package template
