package binding

import (
	"log/slog"

	"github.com/goliatone/go-paramform/pkg/state"
)

// Phase is the per-binding edit state: Idle between events, Editing while a
// raw input is validated, then Committed or Rejected before returning to Idle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseEditing   Phase = "editing"
	PhaseCommitted Phase = "committed"
	PhaseRejected  Phase = "rejected"
)

// Event is one inbound user interaction with a bound input.
type Event struct {
	Name string `json:"name"`
	Raw  any    `json:"value"`
}

// TransitionHook observes phase changes for a parameter.
type TransitionHook func(name string, from, to Phase)

// Option configures a Binder.
type Option func(*Binder)

// WithLogger routes rejected commits to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTransitionHook registers a hook invoked on every phase change.
func WithTransitionHook(hook TransitionHook) Option {
	return func(b *Binder) {
		if hook != nil {
			b.hooks = append(b.hooks, hook)
		}
	}
}

// Binder exposes bindings for the current snapshot of a store and applies
// commits back to it. Like the store it wraps, a Binder is single-threaded.
type Binder struct {
	store  *state.Store
	logger *slog.Logger
	hooks  []TransitionHook
	phases map[string]Phase
}

// NewBinder wraps store.
func NewBinder(store *state.Store, options ...Option) *Binder {
	b := &Binder{
		store:  store,
		logger: slog.New(discardHandler{}),
		phases: make(map[string]Phase),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Store returns the wrapped store.
func (b *Binder) Store() *state.Store {
	return b.store
}

// Bindings returns the bindings for the current snapshot in schema order.
func (b *Binder) Bindings() []Binding {
	return BindAll(b.store.Current())
}

// Binding returns the binding for name.
func (b *Binder) Binding(name string) (Binding, bool) {
	current := b.store.Current()
	def, ok := current.Schema().Lookup(name)
	if !ok {
		return Binding{}, false
	}
	return Bind(current, def), true
}

// Phase reports the current phase of name.
func (b *Binder) Phase(name string) Phase {
	if p, ok := b.phases[name]; ok {
		return p
	}
	return PhaseIdle
}

// Dispatch commits an inbound event.
func (b *Binder) Dispatch(ev Event) Outcome {
	return b.Commit(ev.Name, ev.Raw)
}

// Commit validates raw for name and, when valid, applies a single-key update to
// the store. Invalid input and unknown names yield Rejected without an error;
// the store is left untouched.
func (b *Binder) Commit(name string, raw any) Outcome {
	binding, ok := b.Binding(name)
	if !ok {
		b.logger.Debug("commit rejected", "param", name, "reason", "unknown parameter")
		return Rejected
	}

	b.transition(name, PhaseEditing)
	defer b.transition(name, PhaseIdle)

	value, ok := binding.Coerce(b.store.Current(), raw)
	if !ok {
		b.logger.Debug("commit rejected", "param", name, "type", binding.Type, "raw", raw)
		b.transition(name, PhaseRejected)
		return Rejected
	}
	if _, err := b.store.Apply(map[string]any{name: value}); err != nil {
		b.logger.Debug("commit rejected", "param", name, "error", err)
		b.transition(name, PhaseRejected)
		return Rejected
	}
	b.transition(name, PhaseCommitted)
	return Committed
}

func (b *Binder) transition(name string, to Phase) {
	from := b.Phase(name)
	if to == PhaseIdle {
		delete(b.phases, name)
	} else {
		b.phases[name] = to
	}
	for _, hook := range b.hooks {
		hook(name, from, to)
	}
}
