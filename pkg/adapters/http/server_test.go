package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/pkg/cache"
	"github.com/aretw0/flexmark/pkg/observability"
)

func newEngine(t *testing.T, opts ...flexmark.Option) *flexmark.Engine {
	t.Helper()
	eng, err := flexmark.New(opts...)
	require.NoError(t, err)
	return eng
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/render", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) RenderResponse {
	t.Helper()
	var resp RenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRender_HTML(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	w := post(t, h, `{"markdown": "Here is =r=red=="}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	resp := decode(t, w)
	assert.Equal(t, "html", resp.Format)
	assert.False(t, resp.Cached)
	assert.Equal(t, "<p>Here is <mark class=\"flexible-marker flexible-marker-red\">red</mark></p>\n", resp.Output)
}

func TestRender_Tree(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	w := post(t, h, `{"markdown": "==x==", "format": "tree"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, "tree", resp.Format)
	assert.Contains(t, resp.Output, `"type": "mark"`)
}

func TestRender_RejectsInvalidRequests(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"missing markdown", `{"format": "html"}`},
		{"unknown format", `{"markdown": "x", "format": "pdf"}`},
		{"terminal format", `{"markdown": "x", "format": "term"}`},
		{"unknown field", `{"markdown": "x", "color": "red"}`},
		{"malformed json", `{"markdown": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestRender_BodyLimit(t *testing.T) {
	h, err := NewHandler(newEngine(t), WithMaxBodyBytes(64))
	require.NoError(t, err)

	small := post(t, h, `{"markdown": "==ok=="}`)
	assert.Equal(t, http.StatusOK, small.Code, small.Body.String())

	big := `{"markdown": "` + strings.Repeat("=y=x== ", 40) + `"}`
	w := post(t, h, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds 64 bytes")

	// No declared length: the body is cut off while it is read.
	req := httptest.NewRequest("POST", "/render", io.MultiReader(strings.NewReader(big)))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.GreaterOrEqual(t, w.Code, 400)
	assert.NotContains(t, w.Body.String(), "<mark")
}

func TestRender_Cache(t *testing.T) {
	metrics := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	eng := newEngine(t, flexmark.WithHooks(metrics.Hooks()))
	c := cache.NewMemory(10)
	h, err := NewHandler(eng, WithCache(c), WithMetrics(metrics, reg))
	require.NoError(t, err)

	first := decode(t, post(t, h, `{"markdown": "==a=="}`))
	second := decode(t, post(t, h, `{"markdown": "==a=="}`))

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheRequests.WithLabelValues(observability.CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheRequests.WithLabelValues(observability.CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Marks.WithLabelValues("single")))

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flexmark_cache_requests_total")
	assert.Contains(t, w.Body.String(), "flexmark_render_duration_seconds")
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingCache) Set(context.Context, string, string) error   { return errors.New("down") }

func TestRender_CacheFailureStillRenders(t *testing.T) {
	h, err := NewHandler(newEngine(t), WithCache(failingCache{}))
	require.NoError(t, err)

	w := post(t, h, `{"markdown": "==a=="}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode(t, w).Cached)
}

func TestHealth(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestOpenAPIDocument(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/openapi.yaml", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Spec(), w.Body.Bytes())
}

func TestMetricsDisabled(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestID(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req = httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	h, err := NewHandler(newEngine(t))
	require.NoError(t, err)

	req := httptest.NewRequest("OPTIONS", "/render", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
