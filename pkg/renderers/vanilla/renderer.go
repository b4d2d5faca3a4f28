// Package vanilla renders a panel page: one HTML input per binding, a preview
// image pointing at the current request target, and a GET form whose
// submission encodes the next snapshot in the page URL.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-paramform/pkg/binding"
	"github.com/goliatone/go-paramform/pkg/query"
	rendertemplate "github.com/goliatone/go-paramform/pkg/render/template"
	"github.com/goliatone/go-paramform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/state"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// panel.tmpl and input.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// RenderOptions carries per-page values.
type RenderOptions struct {
	Title      string
	Action     string
	Target     string
	BasePath   string
	Stylesheet string
}

// Renderer renders panel pages.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the media type of rendered pages.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the panel page for st.
func (r *Renderer) Render(ctx context.Context, st state.State, opts RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if st.Schema() == nil {
		return nil, errors.New("vanilla: state has no schema")
	}

	bindings := binding.BindAll(st)
	fields := make([]map[string]any, 0, len(bindings))
	for _, b := range bindings {
		fields = append(fields, fieldView(b))
	}

	title := sanitize(opts.Title)
	if title == "" {
		title = "Parameters"
	}
	data := map[string]any{
		"title":      title,
		"action":     opts.Action,
		"target":     opts.Target,
		"base_path":  opts.BasePath,
		"stylesheet": opts.Stylesheet,
		"fields":     fields,
	}

	out, err := r.templates.RenderTemplate("panel", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla: render panel: %w", err)
	}
	return []byte(out), nil
}

func fieldView(b binding.Binding) map[string]any {
	view := map[string]any{
		"name":       b.Name,
		"label":      sanitize(b.Label),
		"type":       string(b.Type),
		"value":      query.FormatValue(b.Value),
		"css_class":  cssClass(b.Type),
		"numeric":    b.Type.Numeric(),
		"has_bounds": b.Min != nil && b.Max != nil,
	}
	if checked, ok := b.Value.(bool); ok {
		view["checked"] = checked
	}
	if b.Min != nil && b.Max != nil {
		view["min"] = query.FormatValue(*b.Min)
		view["max"] = query.FormatValue(*b.Max)
	}
	return view
}

func cssClass(t schema.ValueType) string {
	switch t {
	case schema.ValueTypeCheckbox:
		return "checkbox"
	case schema.ValueTypeRange:
		return "range"
	default:
		return "input"
	}
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitize strips markup from schema-provided text; escaping happens in the
// templates.
func sanitize(raw string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(labelPolicy.Sanitize(raw))
}
