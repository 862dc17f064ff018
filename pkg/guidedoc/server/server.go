// Package server exposes guideline synthesis to design tool plugins over a
// websocket, and to everything else over plain HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/layout"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/output"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/render"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/source"
)

const (
	defaultCacheSize = 16
	shutdownTimeout  = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Synthesis sizes the layouts and frames.
	Synthesis guidedoc.Options
	// CacheSize is the number of sources whose rows are kept.
	CacheSize int
	// CacheTTL is how long cached rows are served, zero keeps them until
	// evicted.
	CacheTTL time.Duration
	// AllowedOrigins limits websocket clients, empty allows any origin.
	AllowedOrigins []string
	// Registry receives the server metrics. Nil creates a private registry.
	Registry *prom.Registry
	Logger   *zap.Logger
}

// Server answers component and document requests for one guideline source.
type Server struct {
	src      source.Source
	opts     Options
	log      *zap.Logger
	cache    *rowCache
	metrics  *metrics
	upgrader websocket.Upgrader
}

// New creates a new Server reading rows from src.
func New(src source.Source, opts Options) (*Server, error) {
	if src == nil {
		return nil, errors.New("server needs a guideline source")
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts.Synthesis.Logger = log
	if opts.Synthesis.Metrics == (layout.Metrics{}) {
		opts.Synthesis.Metrics = layout.DefaultMetrics()
	}

	m := newMetrics(opts.Registry)
	cache, err := newRowCache(opts.CacheSize, opts.CacheTTL, m)
	if err != nil {
		return nil, err
	}

	s := &Server{
		src:     src,
		opts:    opts,
		log:     log,
		cache:   cache,
		metrics: m,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

// Handler returns the HTTP handler of all server routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /components", s.handleComponents)
	mux.HandleFunc("GET /documents/{component}", s.handleDocument)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.Handle("GET /metrics", s.metrics.handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return s.withRequestID(mux)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Serving guideline documents", zap.String("addr", addr), zap.String("source", s.src.Key()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Components returns the component names of the source.
func (s *Server) Components(ctx context.Context) ([]string, error) {
	set, err := s.cache.rows(ctx, s.src)
	if err != nil {
		return nil, err
	}
	return guidedoc.Components(set.Rows), nil
}

// Document is a synthesized component page in every form the server hands
// out.
type Document struct {
	Component   string                   `json:"component"`
	Found       bool                     `json:"found"`
	Layout      *models.Node             `json:"layout"`
	Markdown    string                   `json:"markdown"`
	Frames      []*render.Frame          `json:"frames,omitempty"`
	Diagnostics []*models.SynthesisError `json:"diagnostics,omitempty"`
}

// Document synthesizes the page of component.
func (s *Server) Document(ctx context.Context, component string) (*Document, error) {
	start := time.Now()

	set, err := s.cache.rows(ctx, s.src)
	if err != nil {
		s.metrics.observeSynthesis(resultError, nil, time.Since(start))
		return nil, err
	}

	res := guidedoc.Synthesize(set.Rows, component, s.opts.Synthesis)

	m := s.opts.Synthesis.Metrics
	canvas := render.NewFrameCanvas(render.FrameOptions{Padding: m.Padding, Spacing: m.ItemSpacing})
	if _, err := render.Materialize(ctx, canvas, res.Layout); err != nil {
		s.metrics.observeSynthesis(resultError, res.Diagnostics, time.Since(start))
		return nil, fmt.Errorf("frames: %w", err)
	}

	result := resultOK
	if !res.HasContent() {
		result = resultNoContent
	}
	s.metrics.observeSynthesis(result, res.Diagnostics, time.Since(start))

	if err := res.Err(); err != nil {
		s.log.Debug("Document synthesized with diagnostics", zap.String("component", res.Component), zap.Error(err))
	}

	return &Document{
		Component:   res.Component,
		Found:       res.HasContent(),
		Layout:      res.Layout,
		Markdown:    render.Markdown(res.Layout),
		Frames:      canvas.Frames(),
		Diagnostics: res.Diagnostics,
	}, nil
}

// Refresh drops all cached rows.
func (s *Server) Refresh() {
	s.cache.purge()
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	names, err := s.Components(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusBadGateway, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, r, http.StatusOK, map[string]any{"components": names})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Document(r.Context(), r.PathValue("component"))
	if err != nil {
		s.fail(w, r, http.StatusBadGateway, err)
		return
	}

	status := http.StatusOK
	if !doc.Found {
		status = http.StatusNotFound
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		s.writeJSON(w, r, status, doc)
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(doc.Markdown))
	case "html":
		page, err := render.HTMLPage(doc.Component, doc.Markdown)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(page)
	default:
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.Refresh()
	s.log.Info("Row cache purged", zap.String("request_id", requestID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	// non-browser clients send no origin
	return origin == "" || slices.Contains(s.opts.AllowedOrigins, origin)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := output.ToJSON(v, false)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Warn("Request failed",
		zap.String("request_id", requestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))

	data, _ := output.ToJSON(map[string]string{"error": err.Error()}, false)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type ctxKey struct{}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
