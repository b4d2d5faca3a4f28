package paramform

import (
	"log/slog"

	"github.com/goliatone/go-paramform/pkg/binding"
	"github.com/goliatone/go-paramform/pkg/preview"
	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/state"
)

// Binding aliases binding.Binding for callers that only import the root
// package.
type Binding = binding.Binding

// Event aliases binding.Event, the inbound (parameterName, rawValue) pair.
type Event = binding.Event

// Outcome aliases binding.Outcome.
type Outcome = binding.Outcome

// FormOption configures a Form.
type FormOption func(*formConfig)

type formConfig struct {
	basePath string
	initial  *state.State
	logger   *slog.Logger
	sinks    []preview.Sink
}

// WithBasePath sets the base path request targets are built on.
func WithBasePath(path string) FormOption {
	return func(cfg *formConfig) {
		cfg.basePath = path
	}
}

// WithInitialState seeds the form with an existing snapshot instead of the
// schema defaults. The snapshot must come from the same schema.
func WithInitialState(st state.State) FormOption {
	return func(cfg *formConfig) {
		cfg.initial = &st
	}
}

// WithLogger forwards logger to the binder.
func WithLogger(logger *slog.Logger) FormOption {
	return func(cfg *formConfig) {
		cfg.logger = logger
	}
}

// WithTargetSink registers a rendering collaborator that receives the current
// target immediately and after every accepted edit.
func WithTargetSink(sink preview.Sink) FormOption {
	return func(cfg *formConfig) {
		if sink != nil {
			cfg.sinks = append(cfg.sinks, sink)
		}
	}
}

// Form bundles the schema, the state store, the binder and the preview
// resource of one form instance. A Form is single-threaded; create one per
// instance and discard it on teardown.
type Form struct {
	schema  *schema.Schema
	store   *state.Store
	binder  *binding.Binder
	preview *preview.Resource
}

// NewForm builds a form over s.
func NewForm(s *schema.Schema, options ...FormOption) *Form {
	cfg := formConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	store := state.NewStore(s)
	if cfg.initial != nil && cfg.initial.Schema() == s {
		store = state.NewStoreFrom(*cfg.initial)
	}

	f := &Form{
		schema:  s,
		store:   store,
		binder:  binding.NewBinder(store, binding.WithLogger(cfg.logger)),
		preview: preview.New(cfg.basePath),
	}
	for _, sink := range cfg.sinks {
		f.preview.Watch(store, sink)
	}
	return f
}

// Schema returns the form's schema.
func (f *Form) Schema() *schema.Schema {
	return f.schema
}

// State returns the current snapshot.
func (f *Form) State() state.State {
	return f.store.Current()
}

// Store exposes the underlying store for subscribers.
func (f *Form) Store() *state.Store {
	return f.store
}

// Binder exposes the underlying binder.
func (f *Form) Binder() *binding.Binder {
	return f.binder
}

// Bindings returns the bindings for the current snapshot in schema order.
func (f *Form) Bindings() []Binding {
	return f.binder.Bindings()
}

// Commit applies raw input to the named parameter.
func (f *Form) Commit(name string, raw any) Outcome {
	return f.binder.Commit(name, raw)
}

// Dispatch applies an inbound event.
func (f *Form) Dispatch(ev Event) Outcome {
	return f.binder.Dispatch(ev)
}

// Target resolves the request target for the current snapshot.
func (f *Form) Target() string {
	return f.preview.Resolve(f.store.Current())
}

// BasePath returns the base path targets are built on.
func (f *Form) BasePath() string {
	return f.preview.BasePath()
}
