package state

import "github.com/goliatone/go-paramform/pkg/schema"

// Listener observes accepted updates. It receives the replaced snapshot and
// its successor.
type Listener func(prev, next State)

// Store owns the current snapshot of a single form instance and notifies
// listeners synchronously after every accepted update. A Store is driven from
// one logical thread and is not safe for concurrent use.
type Store struct {
	current   State
	listeners []*subscription
}

type subscription struct {
	fn Listener
}

// NewStore seeds a store with the defaults of s.
func NewStore(s *schema.Schema) *Store {
	return &Store{current: Initialize(s)}
}

// NewStoreFrom seeds a store with an existing snapshot.
func NewStoreFrom(initial State) *Store {
	return &Store{current: initial}
}

// Current returns the latest snapshot. Snapshots held by callers never change.
func (s *Store) Current() State {
	return s.current
}

// Schema returns the schema backing the store.
func (s *Store) Schema() *schema.Schema {
	return s.current.schema
}

// Apply runs Update against the current snapshot. On success the new snapshot
// replaces the current one and listeners run in subscription order; on error
// nothing changes and no listener runs.
func (s *Store) Apply(edits map[string]any) (State, error) {
	next, err := Update(s.current, edits)
	if err != nil {
		return s.current, err
	}
	if len(edits) == 0 {
		return s.current, nil
	}
	prev := s.current
	s.current = next
	for _, sub := range append([]*subscription(nil), s.listeners...) {
		sub.fn(prev, next)
	}
	return next, nil
}

// Subscribe registers fn and returns a function removing it.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	s.listeners = append(s.listeners, sub)
	return func() {
		for i, candidate := range s.listeners {
			if candidate == sub {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
