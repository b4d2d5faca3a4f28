package schemafile_test

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/schemafile"
)

func TestLoadFileYAML(t *testing.T) {
	doc, err := schemafile.LoadFile("testdata/stereogram.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.BasePath != "/generate" {
		t.Fatalf("expected base path /generate, got %q", doc.BasePath)
	}

	want := []string{"src", "pat", "seed", "partsize", "depth", "sym", "inverse", "flat"}
	if diff := cmp.Diff(want, doc.Schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	flat, _ := doc.Schema.Lookup("flat")
	if flat.Type != schema.ValueTypeCheckbox {
		t.Fatalf("expected type names to be case-insensitive, got %q", flat.Type)
	}
	defaults := doc.Schema.Defaults()
	if defaults["partsize"] != float64(100) || defaults["depth"] != float64(40) {
		t.Fatalf("unexpected range defaults: %v", defaults)
	}
}

func TestLoadFSJSON(t *testing.T) {
	doc, err := schemafile.LoadFS(os.DirFS("testdata"), "minimal.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.BasePath != "" {
		t.Fatalf("expected empty base path, got %q", doc.BasePath)
	}
	if got := doc.Schema.Defaults()["zoom"]; got != float64(2) {
		t.Fatalf("expected midpoint default 2, got %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := schemafile.Parse([]byte("  \n"), "blank.yaml"); !errors.Is(err, schemafile.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := schemafile.Parse([]byte("parameters: []"), "none.yaml"); err == nil {
		t.Fatalf("expected error for document without parameters")
	}
	if _, err := schemafile.Parse([]byte("parameters: [oops"), "broken.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := schemafile.LoadFile("testdata/bad_range.yaml"); !errors.Is(err, schema.ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	doc, err := schemafile.LoadFile("testdata/stereogram.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	data, err := schemafile.MarshalYAML(doc.Schema, doc.BasePath)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := schemafile.Parse(data, "roundtrip.yaml")
	if err != nil {
		t.Fatalf("parse marshalled: %v\n%s", err, data)
	}
	if diff := cmp.Diff(doc.Schema.Definitions(), again.Schema.Definitions()); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
	if again.BasePath != doc.BasePath {
		t.Fatalf("base path lost: %q", again.BasePath)
	}
}
