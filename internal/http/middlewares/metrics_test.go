package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerScrapesProvidedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := RegisterMetrics(MetricsConfig{Registry: reg})
	require.NoError(t, err)

	// Generar una muestra pasando un request por el middleware
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	WithMetrics()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/classes", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	// El scrape debe servir el MISMO registry donde se registraron
	// las métricas, no el gatherer global.
	scrape := httptest.NewRecorder()
	h.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, scrape.Code)

	body := scrape.Body.String()
	require.Contains(t, body, "http_requests_total")
	require.Contains(t, body, `path="/classes"`)
}

func TestNormalizePathBoundsCardinality(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/", "/"},
		{"/classes", "/classes"},
		{"/users/admin/ana@example.com", "/users/admin/:param"},
		{"/users/admin/ana%40example.com", "/users/admin/:param"},
		{"/cart/550e8400-e29b-41d4-a716-446655440000", "/cart/:param"},
		{"/users/12345", "/users/:param"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, normalizePath(c.in), "path %q", c.in)
	}
}
