package state_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/state"
)

func seedSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		schema.Text("src", "Depth Map"),
		schema.Number("seed", "Seed", 0),
		schema.Range("partsize", "Part Size", 0, 500).WithDefault(100),
		schema.Checkbox("sym", "Symmetric"),
	)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	return s
}

func TestInitializeUsesDefaults(t *testing.T) {
	st := state.Initialize(seedSchema(t))

	want := map[string]any{
		"src":      "",
		"seed":     float64(0),
		"partsize": float64(100),
		"sym":      false,
	}
	if diff := cmp.Diff(want, st.Values()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateSingleNumber(t *testing.T) {
	s := schema.MustNew(schema.Number("seed", "", 0))
	st := state.Initialize(s)
	if diff := cmp.Diff(map[string]any{"seed": float64(0)}, st.Values()); diff != "" {
		t.Fatalf("initial mismatch (-want +got):\n%s", diff)
	}

	next, err := state.Update(st, map[string]any{"seed": 5})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"seed": float64(5)}, next.Values()); diff != "" {
		t.Fatalf("updated mismatch (-want +got):\n%s", diff)
	}
	if v, _ := st.Get("seed"); v != float64(0) {
		t.Fatalf("previous snapshot changed: seed=%v", v)
	}
}

func TestUpdateRejectsUnknownKeysAtomically(t *testing.T) {
	st := state.Initialize(seedSchema(t))

	next, err := state.Update(st, map[string]any{
		"seed":    float64(9),
		"missing": "x",
		"other":   true,
	})
	if !errors.Is(err, state.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
	var violation *state.SchemaViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected *SchemaViolationError, got %T", err)
	}
	if diff := cmp.Diff([]string{"missing", "other"}, violation.Unknown); diff != "" {
		t.Fatalf("unknown names mismatch (-want +got):\n%s", diff)
	}
	if !next.Equal(st) {
		t.Fatalf("rejected update must return the prior snapshot")
	}
	if v, _ := st.Get("seed"); v != float64(0) {
		t.Fatalf("partial application observed: seed=%v", v)
	}
}

func TestUpdateRejectsMismatchedValues(t *testing.T) {
	st := state.Initialize(seedSchema(t))

	_, err := state.Update(st, map[string]any{"sym": "yes"})
	var violation *state.SchemaViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected *SchemaViolationError, got %v", err)
	}
	if diff := cmp.Diff([]string{"sym"}, violation.Mismatched); diff != "" {
		t.Fatalf("mismatched names (-want +got):\n%s", diff)
	}
}

func TestUpdateNoOpEditIsIdempotent(t *testing.T) {
	st := state.Initialize(seedSchema(t))
	for _, name := range st.Schema().Names() {
		current, _ := st.Get(name)
		next, err := state.Update(st, map[string]any{name: current})
		if err != nil {
			t.Fatalf("update %s: %v", name, err)
		}
		if !next.Equal(st) {
			t.Fatalf("re-supplying %s changed the snapshot", name)
		}
	}
}

func TestUpdateIsReferentiallyTransparent(t *testing.T) {
	st := state.Initialize(seedSchema(t))
	edits := map[string]any{"src": "map.png", "partsize": 250}

	a, errA := state.Update(st, edits)
	b, errB := state.Update(st, edits)
	if errA != nil || errB != nil {
		t.Fatalf("update errors: %v %v", errA, errB)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("snapshots differ (-a +b):\n%s", diff)
	}
}

func TestKeySetNeverChanges(t *testing.T) {
	s := seedSchema(t)
	st := state.Initialize(s)
	st, _ = state.Update(st, map[string]any{"src": "a"})
	st, _ = state.Update(st, map[string]any{"bogus": 1})
	st, _ = state.Update(st, map[string]any{"sym": true, "seed": 3.5})

	if st.Len() != s.Len() {
		t.Fatalf("expected %d keys, got %d", s.Len(), st.Len())
	}
	for _, name := range s.Names() {
		if _, ok := st.Get(name); !ok {
			t.Fatalf("missing key %s", name)
		}
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	st := state.Initialize(seedSchema(t))
	values := st.Values()
	values["src"] = "mutated"
	values["extra"] = 1

	if v, _ := st.Get("src"); v != "" {
		t.Fatalf("snapshot mutated through Values: %v", v)
	}
	if st.Len() != 4 {
		t.Fatalf("snapshot grew through Values: %d", st.Len())
	}
}

func TestEqualComparesSchemaIdentity(t *testing.T) {
	a := state.Initialize(seedSchema(t))
	b := state.Initialize(seedSchema(t))

	if diff := cmp.Diff(a.Values(), b.Values()); diff != "" {
		t.Fatalf("expected identical values (-a +b):\n%s", diff)
	}
	if a.Equal(b) {
		t.Fatalf("expected snapshots over distinct schemas to differ")
	}
	if !a.Equal(state.Initialize(a.Schema())) {
		t.Fatalf("expected snapshots over the same schema to be equal")
	}
}
