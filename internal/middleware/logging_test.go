package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/articles/internal/metrics"
)

func newLoggedRouter(buf *bytes.Buffer) http.Handler {
	logger := slog.New(slog.NewTextHandler(buf, nil))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(Logger(logger))
	r.Get("/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return r
}

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/articles/7", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	router.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	assert.Contains(t, line, "request completed")
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "path=/articles/7")
	assert.Contains(t, line, "route=/articles/{id}")
	assert.Contains(t, line, "status=418")
	assert.Contains(t, line, "bytes=15")
	assert.Contains(t, line, "request_id=req-abc")
	assert.Contains(t, line, "level=INFO")
}

func TestLogger_ServerErrorsLogAtError(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLogger_ObservesByRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)

	// two different ids share one series
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/articles/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/articles/2", nil))
	// unmatched paths share another
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/2", nil))

	after := testutil.CollectAndCount(metrics.HTTPRequestDuration)
	require.LessOrEqual(t, after-before, 2)

	assert.Contains(t, buf.String(), "route="+unmatchedRoute)
}
