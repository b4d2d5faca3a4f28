package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paramform/pkg/schema"
)

// Options tunes the generated document.
type Options struct {
	Title       string
	Version     string
	OperationID string
	Summary     string
	// ResponseMediaTypes lists the content types the generation service may
	// answer with.
	ResponseMediaTypes []string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Parameter panel"
	}
	if o.Version == "" {
		o.Version = "1.0.0"
	}
	if o.OperationID == "" {
		o.OperationID = "generate"
	}
	if len(o.ResponseMediaTypes) == 0 {
		o.ResponseMediaTypes = []string{"image/png", "image/gif"}
	}
	return o
}

// Describe builds and validates the OpenAPI document for s served at basePath.
func Describe(ctx context.Context, s *schema.Schema, basePath string, opts Options) (*openapi3.T, error) {
	if s == nil || s.Len() == 0 {
		return nil, errors.New("openapi: schema has no parameters")
	}
	path := strings.TrimSpace(basePath)
	if path == "" {
		return nil, errors.New("openapi: base path is required")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	opts = opts.withDefaults()

	op := openapi3.NewOperation()
	op.OperationID = opts.OperationID
	op.Summary = opts.Summary
	for _, def := range s.Definitions() {
		op.AddParameter(parameterFor(def))
	}

	content := openapi3.Content{}
	for _, mediaType := range opts.ResponseMediaTypes {
		content[mediaType] = openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema().WithFormat("binary"))
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Generated image").WithContent(content),
		}),
		openapi3.WithStatus(400, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Invalid parameters"),
		}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   opts.Title,
			Version: opts.Version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(path, &openapi3.PathItem{Get: op})),
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

func parameterFor(def schema.Definition) *openapi3.Parameter {
	var sch *openapi3.Schema
	switch def.Type {
	case schema.ValueTypeNumber:
		sch = openapi3.NewFloat64Schema()
	case schema.ValueTypeRange:
		sch = openapi3.NewFloat64Schema()
		if def.Min != nil {
			sch = sch.WithMin(*def.Min)
		}
		if def.Max != nil {
			sch = sch.WithMax(*def.Max)
		}
	case schema.ValueTypeCheckbox:
		sch = openapi3.NewBoolSchema()
	default:
		sch = openapi3.NewStringSchema()
	}
	sch = sch.WithDefault(schema.DefaultValue(def))
	if def.Type == schema.ValueTypeRange {
		sch.Extensions = map[string]any{"x-paramform-widget": "range"}
	}

	param := openapi3.NewQueryParameter(def.Name).WithSchema(sch)
	param.Description = def.DisplayLabel()
	param.Required = true
	return param
}
