// Package preview projects form-state snapshots into the request target handed
// to the rendering collaborator. It never issues requests itself.
package preview

import (
	"github.com/goliatone/go-paramform/pkg/query"
	"github.com/goliatone/go-paramform/pkg/state"
)

// Sink receives every freshly resolved target.
type Sink func(target string)

// Resource resolves request targets for a fixed base path, memoizing the last
// result against the snapshot it was derived from. Not safe for concurrent use.
type Resource struct {
	basePath string

	last   state.State
	target string
	primed bool

	hits, misses int
}

// New returns a Resource for basePath (for example "/generate").
func New(basePath string) *Resource {
	return &Resource{basePath: basePath}
}

// BasePath returns the configured base path.
func (r *Resource) BasePath() string {
	return r.basePath
}

// Resolve returns basePath + "?" + the synthesized query for st. Synthesis is
// skipped when st equals the snapshot used for the previous call.
func (r *Resource) Resolve(st state.State) string {
	if r.primed && r.last.Equal(st) {
		r.hits++
		return r.target
	}
	r.misses++
	r.target = r.basePath + "?" + query.Synthesize(st, st.Schema())
	r.last = st
	r.primed = true
	return r.target
}

// Target returns the last resolved target, or "" before the first Resolve.
func (r *Resource) Target() string {
	return r.target
}

// Hits reports how many Resolve calls were served from the memo.
func (r *Resource) Hits() int {
	return r.hits
}

// Misses reports how many Resolve calls re-synthesized the query.
func (r *Resource) Misses() int {
	return r.misses
}

// Watch resolves the store's current snapshot, hands it to sink, and keeps
// sink updated after every accepted update. The returned func stops watching.
func (r *Resource) Watch(store *state.Store, sink Sink) func() {
	if sink == nil {
		sink = func(string) {}
	}
	sink(r.Resolve(store.Current()))
	return store.Subscribe(func(_, next state.State) {
		sink(r.Resolve(next))
	})
}
