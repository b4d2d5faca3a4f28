package openapi_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/openapi"
	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/testsupport"
)

func panel() *schema.Schema {
	return schema.MustNew(
		schema.Text("src", "Depth Map"),
		schema.Number("seed", "Seed", 0),
		schema.Range("depth", "Max Depth", 0, 50).WithDefault(40),
		schema.Checkbox("flat", "Flat"),
	)
}

func TestDescribe(t *testing.T) {
	doc, err := openapi.Describe(context.Background(), panel(), "generate", openapi.Options{})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	item := doc.Paths.Value("/generate")
	if item == nil || item.Get == nil {
		t.Fatalf("expected GET /generate operation")
	}
	if item.Get.OperationID != "generate" {
		t.Fatalf("unexpected operation id %q", item.Get.OperationID)
	}

	var names []string
	for _, ref := range item.Get.Parameters {
		names = append(names, ref.Value.Name)
		if ref.Value.In != openapi3.ParameterInQuery {
			t.Fatalf("parameter %s not in query", ref.Value.Name)
		}
	}
	if diff := cmp.Diff([]string{"src", "seed", "depth", "flat"}, names); diff != "" {
		t.Fatalf("parameter order mismatch (-want +got):\n%s", diff)
	}

	depth := item.Get.Parameters.GetByInAndName(openapi3.ParameterInQuery, "depth")
	if depth.Schema.Value.Min == nil || *depth.Schema.Value.Min != 0 || *depth.Schema.Value.Max != 50 {
		t.Fatalf("range bounds missing: %+v", depth.Schema.Value)
	}
	if depth.Schema.Value.Default != float64(40) {
		t.Fatalf("expected default 40, got %v", depth.Schema.Value.Default)
	}
}

func TestDescribeRoundTripsThroughLoader(t *testing.T) {
	doc, err := openapi.Describe(context.Background(), panel(), "/generate", openapi.Options{Title: "Stereogram"})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := loaded.Validate(context.Background()); err != nil {
		t.Fatalf("validate loaded: %v", err)
	}
	if loaded.Info.Title != "Stereogram" {
		t.Fatalf("unexpected title %q", loaded.Info.Title)
	}
}

func TestDescribeRequiresInput(t *testing.T) {
	if _, err := openapi.Describe(context.Background(), nil, "/generate", openapi.Options{}); err == nil {
		t.Fatalf("expected error for nil schema")
	}
	if _, err := openapi.Describe(context.Background(), panel(), " ", openapi.Options{}); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}

func TestDescribeSchemaFile(t *testing.T) {
	s := testsupport.MustLoadSchema(t, "../schemafile/testdata/minimal.json")
	doc, err := openapi.Describe(context.Background(), s, "/render", openapi.Options{Title: "Minimal"})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	op := doc.Paths.Value("/render").Get
	var names []string
	for _, ref := range op.Parameters {
		names = append(names, ref.Value.Name)
	}
	if diff := testsupport.CompareGolden([]string{"seed", "zoom"}, names); diff != "" {
		t.Fatalf("parameter order mismatch (-want +got):\n%s", diff)
	}

	zoom := op.Parameters[1].Value.Schema.Value
	if zoom.Min == nil || *zoom.Min != 1 || zoom.Max == nil || *zoom.Max != 3 {
		t.Fatalf("expected zoom bounds 1..3, got %v..%v", zoom.Min, zoom.Max)
	}
	if zoom.Default != float64(2) {
		t.Fatalf("expected midpoint default 2, got %v", zoom.Default)
	}
}
