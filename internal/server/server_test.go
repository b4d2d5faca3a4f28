package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	paramform "github.com/goliatone/go-paramform"
	"github.com/goliatone/go-paramform/internal/server"
)

func newServer(t *testing.T, logs io.Writer) *server.Server {
	t.Helper()
	srv, err := server.New(context.Background(), server.Options{
		Schema:   paramform.StereogramSchema(),
		BasePath: "/generate",
		Title:    "Stereogram",
		Logger:   slog.New(slog.NewTextHandler(logs, nil)),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestPanelPage(t *testing.T) {
	var logs bytes.Buffer
	handler := newServer(t, &logs).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?seed=3&flat=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		`name="seed" value="3"`,
		`name="flat" value="true" checked`,
		`/generate?src=&amp;pat=&amp;seed=3&amp;partsize=100&amp;depth=40&amp;sym=false&amp;inverse=false&amp;flat=true`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("panel missing %q", want)
		}
	}
	if !strings.Contains(logs.String(), "msg=request") {
		t.Fatalf("expected request log line, got %q", logs.String())
	}
}

func TestPanelRejectsMalformedState(t *testing.T) {
	handler := newServer(t, io.Discard).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?seed=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCommit(t *testing.T) {
	handler := newServer(t, io.Discard).Handler()

	commit := func(form url.Values) map[string]string {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/commit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var out map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return out
	}

	ok := commit(url.Values{"state": {"depth=10"}, "name": {"partsize"}, "value": {"250"}})
	if ok["outcome"] != "committed" {
		t.Fatalf("expected committed, got %v", ok)
	}
	wantQuery := "src=&pat=&seed=0&partsize=250&depth=10&sym=false&inverse=false&flat=false"
	if ok["query"] != wantQuery || ok["target"] != "/generate?"+wantQuery {
		t.Fatalf("unexpected commit response %v", ok)
	}

	rejected := commit(url.Values{"state": {wantQuery}, "name": {"seed"}, "value": {"abc"}})
	if rejected["outcome"] != "rejected" || rejected["query"] != wantQuery {
		t.Fatalf("rejected commit changed state: %v", rejected)
	}
}

func TestTargetAndOpenAPI(t *testing.T) {
	handler := newServer(t, io.Discard).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/target?sym=true", nil))
	var target struct {
		Target   string           `json:"target"`
		Bindings []map[string]any `json:"bindings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &target); err != nil {
		t.Fatalf("decode target: %v", err)
	}
	if !strings.Contains(target.Target, "sym=true") || len(target.Bindings) != 8 {
		t.Fatalf("unexpected target response %+v", target)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode openapi: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/generate"]; !ok {
		t.Fatalf("openapi missing /generate path: %v", doc["paths"])
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := newServer(t, io.Discard)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/target")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
