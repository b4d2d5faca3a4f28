package gotemplate_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-paramform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-paramform/pkg/testsupport"
)

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(os.DirFS("testdata/templates"))}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "<Ada>"}, w)
	})

	golden := filepath.Join("testdata", "hello.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(result)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestRenderTemplateWithStructData(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}

	result, err := engine.RenderTemplate("hello.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Grace!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestRegisterFilterAndGlobals(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"site": "panel"}))
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return "stale", nil }); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("re-register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "panel: ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestRegisterFilterAcrossEngines(t *testing.T) {
	for i := 0; i < 2; i++ {
		engine := newEngine(t)
		err := engine.RegisterFilter("brackets", func(input any, _ any) (any, error) {
			return "[" + fmt.Sprint(input) + "]", nil
		})
		if err != nil {
			t.Fatalf("engine %d: register filter: %v", i, err)
		}
		result, err := engine.RenderString("{{ v|brackets }}", map[string]any{"v": i})
		if err != nil {
			t.Fatalf("engine %d: render: %v", i, err)
		}
		if want := fmt.Sprintf("[%d]", i); result != want {
			t.Fatalf("engine %d: want %q, got %q", i, want, result)
		}
	}
}

func TestRegisterFilterRequiresName(t *testing.T) {
	engine := newEngine(t)
	if err := engine.RegisterFilter(" ", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected error for blank filter name")
	}
}

func TestRenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderString("{% for n in items %}{{ n }};{% endfor %}", map[string]any{"items": []any{1, 2}})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1;2;" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNewRequiresFS(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template fs")
	}
}
