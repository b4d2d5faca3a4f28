// Package server exposes a panel over HTTP. Every request rebuilds its own
// form instance from the snapshot encoded in the query string, so no form
// state is shared between requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	paramform "github.com/goliatone/go-paramform"
	"github.com/goliatone/go-paramform/pkg/binding"
	"github.com/goliatone/go-paramform/pkg/openapi"
	"github.com/goliatone/go-paramform/pkg/query"
	"github.com/goliatone/go-paramform/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramform/pkg/schema"
)

// Options configures a Server.
type Options struct {
	Schema          *schema.Schema
	BasePath        string
	Title           string
	Logger          *slog.Logger
	ShutdownTimeout time.Duration
}

// Server serves the panel page, commit endpoint and OpenAPI description.
type Server struct {
	schema          *schema.Schema
	basePath        string
	title           string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	renderer        *vanilla.Renderer
	openapi         []byte
}

// New validates opts and prepares the renderer and OpenAPI document.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Schema == nil {
		return nil, errors.New("server: schema is required")
	}
	if opts.BasePath == "" {
		opts.BasePath = paramform.DefaultBasePath
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	renderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	doc, err := openapi.Describe(ctx, opts.Schema, opts.BasePath, openapi.Options{Title: opts.Title})
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("server: marshal openapi: %w", err)
	}

	return &Server{
		schema:          opts.Schema,
		basePath:        opts.BasePath,
		title:           opts.Title,
		logger:          opts.Logger,
		shutdownTimeout: opts.ShutdownTimeout,
		renderer:        renderer,
		openapi:         docJSON,
	}, nil
}

// Handler returns the HTTP routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePanel)
	mux.HandleFunc("POST /commit", s.handleCommit)
	mux.HandleFunc("GET /target", s.handleTarget)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(paramform.PanelAssetsFS())))
	return s.logRequests(mux)
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Info("starting server", "addr", ln.Addr().String(), "base_path", s.basePath)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("stopping server")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func (s *Server) newForm(rawQuery string) (*paramform.Form, error) {
	st, err := query.Restore(rawQuery, s.schema)
	if err != nil {
		return nil, err
	}
	return paramform.NewForm(s.schema,
		paramform.WithInitialState(st),
		paramform.WithBasePath(s.basePath),
		paramform.WithLogger(s.logger),
	), nil
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	form, err := s.newForm(r.URL.RawQuery)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := s.renderer.Render(r.Context(), form.State(), vanilla.RenderOptions{
		Title:      s.title,
		Action:     "/",
		Target:     form.Target(),
		BasePath:   s.basePath,
		Stylesheet: "/assets/" + vanilla.StylesheetName,
	})
	if err != nil {
		s.logger.Error("render panel", "err", err)
		http.Error(w, "failed to render panel", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	_, _ = w.Write(page)
}

type commitResponse struct {
	Outcome binding.Outcome `json:"outcome"`
	Target  string          `json:"target"`
	Query   string          `json:"query"`
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form, err := s.newForm(r.PostForm.Get("state"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome := form.Commit(r.PostForm.Get("name"), r.PostForm.Get("value"))
	writeJSON(w, commitResponse{
		Outcome: outcome,
		Target:  form.Target(),
		Query:   query.Synthesize(form.State(), s.schema),
	})
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	form, err := s.newForm(r.URL.RawQuery)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"target":   form.Target(),
		"bindings": form.Bindings(),
	})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"remote", r.RemoteAddr,
			"method", r.Method,
			"url", r.URL.String(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
