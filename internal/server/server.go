// Package server exposes the tag cloud pipeline over HTTP.
//
// Routes:
//
//	POST /v1/clouds                     run the pipeline on a JSON request
//	GET  /v1/artifacts/{id}.{format}    fetch a rendered artifact
//	GET  /healthz                       liveness probe
//
// A cloud request is a JSON [pipeline.Options] document. Zero fields take
// the server defaults, which come from the configuration file. The response
// carries the placed cloud plus one URL per rendered format; the artifacts
// themselves are stored in the server cache under a fresh UUID.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes bounds the request body of POST /v1/clouds.
	DefaultMaxBodyBytes = 4 << 20

	// Request limits. A search keeps up to MaxCandidates probed offsets in
	// memory, so the ceiling bounds memory per request.
	MaxCanvas     = 8192
	MaxCount      = 1000
	MaxCandidates = 1_000_000
	MaxFontSize   = 512

	// RequestIDHeader carries the request ID on every response.
	RequestIDHeader = "X-Request-ID"

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner executes the pipeline. Required.
	Runner *pipeline.Runner

	// Store holds rendered artifacts for GET /v1/artifacts. Defaults to
	// Runner.Cache.
	Store cache.Cache

	// Defaults fill zero fields of incoming requests.
	Defaults pipeline.Options

	// MaxBodyBytes bounds request bodies. Default: DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// KeyPrefix namespaces artifact keys in Store, matching the runner's
	// scoped keyer when the store is shared.
	KeyPrefix string

	// ArtifactTTL is how long artifacts stay fetchable. Default:
	// cache.TTLArtifact.
	ArtifactTTL time.Duration

	Logger *log.Logger
}

// Server is the HTTP front end of the pipeline.
type Server struct {
	runner      *pipeline.Runner
	store       cache.Cache
	defaults    pipeline.Options
	maxBody     int64
	artifactTTL time.Duration
	keyPrefix   string
	logger      *log.Logger
	newID       func() string
}

// New creates a server. It panics if cfg.Runner is nil.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		panic("server: nil runner")
	}
	s := &Server{
		runner:      cfg.Runner,
		store:       cfg.Store,
		defaults:    cfg.Defaults,
		maxBody:     cfg.MaxBodyBytes,
		artifactTTL: cfg.ArtifactTTL,
		keyPrefix:   cfg.KeyPrefix,
		logger:      cfg.Logger,
		newID:       uuid.NewString,
	}
	if s.store == nil {
		s.store = cfg.Runner.Cache
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.artifactTTL <= 0 {
		s.artifactTTL = cache.TTLArtifact
	}
	if s.logger == nil {
		s.logger = cfg.Runner.Logger
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/clouds", s.handleCreateCloud)
		r.Get("/artifacts/{id}.{format}", s.handleGetArtifact)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const loggerKey ctxKey = 0

// requestID assigns every request a UUID, echoes it in the response header
// and attaches a logger carrying it to the request context.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = s.newID()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), loggerKey, s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports requests and responses to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return fallback
}
