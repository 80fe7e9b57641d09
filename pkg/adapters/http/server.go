// Package http exposes a flexmark engine as a JSON render service.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/pkg/cache"
	"github.com/aretw0/flexmark/pkg/observability"
)

//go:embed openapi.yaml
var rawSpec []byte

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return rawSpec
}

// Engine is the part of flexmark.Engine the service needs.
type Engine interface {
	Render(source []byte, format flexmark.Format) (string, error)
	Fingerprint() string
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Markdown string `json:"markdown"`
	Format   string `json:"format,omitempty"`
}

// RenderResponse is the body returned by POST /render.
type RenderResponse struct {
	Output string `json:"output"`
	Format string `json:"format"`
	Cached bool   `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// DefaultMaxBodyBytes bounds the size of a POST /render body.
const DefaultMaxBodyBytes int64 = 1 << 20

// Server serves render requests for one engine.
type Server struct {
	Engine       Engine
	Cache        cache.Cache
	Metrics      *observability.Metrics
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	MaxBodyBytes int64

	router routers.Router
}

// Option configures a Server.
type Option func(*Server)

// WithCache enables the render cache.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		s.Cache = c
	}
}

// WithMetrics records render and cache metrics and serves GET /metrics
// from g.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for access and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// NewServer builds a Server and loads the request schema.
func NewServer(engine Engine, opts ...Option) (*Server, error) {
	s := &Server{Engine: engine, MaxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}
	s.router = router

	return s, nil
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/healthz", s.Health)
	r.With(s.limitBody, s.validate).Post("/render", s.Render)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Render handles POST /render.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger(r).Warn("render: invalid request body", "error", err)
		return
	}
	if body.Format == "" {
		body.Format = string(flexmark.FormatHTML)
	}
	format, err := flexmark.ParseFormat(body.Format)
	if err != nil || format == flexmark.FormatTerm {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", body.Format))
		return
	}

	source := []byte(body.Markdown)
	key := cache.Key(s.Engine.Fingerprint(), string(format), source)

	if out, ok := s.cached(r.Context(), key); ok {
		writeJSON(w, http.StatusOK, RenderResponse{Output: out, Format: string(format), Cached: true})
		return
	}

	start := time.Now()
	out, err := s.Engine.Render(source, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("render error: %v", err))
		s.logger(r).Error("render failed", "error", err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.ObserveRender(string(format), time.Since(start))
	}

	if s.Cache != nil {
		if err := s.Cache.Set(r.Context(), key, out); err != nil {
			s.logger(r).Warn("render: cache write failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, RenderResponse{Output: out, Format: string(format)})
}

func (s *Server) cached(ctx context.Context, key string) (string, bool) {
	if s.Cache == nil {
		return "", false
	}
	out, err := s.Cache.Get(ctx, key)
	hit := err == nil
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.Logger.Warn("render: cache read failed", "error", err)
	}
	if s.Metrics != nil {
		s.Metrics.ObserveCache(hit)
	}
	return out, hit
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(flexmark.Version),
	})
}

// limitBody rejects bodies larger than MaxBodyBytes. A declared length is
// checked up front; anything else is cut off while it is read.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.MaxBodyBytes <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > s.MaxBodyBytes {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", s.MaxBodyBytes))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

// validate rejects requests that do not match the OpenAPI document.
func (s *Server) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, err := s.router.FindRoute(r)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			s.logger(r).Debug("request rejected", "error", err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// -- Middleware --

type requestIDKey struct{}

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID returns the id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger(r).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) logger(r *http.Request) *slog.Logger {
	return s.Logger.With("request_id", RequestID(r.Context()))
}
