package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metrics"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"docs.example.com", "docs.example.com", true},
		{"docs.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil-example.com", "*.example.com", false},
		{"docs.example.org", "*.example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchHost(tt.host, tt.pattern), "%s vs %s", tt.host, tt.pattern)
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"Docs.Example.com"}, logger.NewNop())(ok)

	req := httptest.NewRequest(http.MethodGet, "/nav", nil)
	req.Host = "docs.example.com:8080"
	assert.Equal(t, http.StatusOK, serve(h, req))

	req.Host = "other.example.com"
	assert.Equal(t, http.StatusForbidden, serve(h, req))

	passthrough := EnforceHost(nil, logger.NewNop())(ok)
	assert.Equal(t, http.StatusOK, serve(passthrough, req))
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, true, logger.NewNop())(ok)

	req := httptest.NewRequest(http.MethodGet, "/validate", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	req.Header.Set("X-Forwarded-For", "10.2.3.4")
	assert.Equal(t, http.StatusOK, serve(h, req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	assert.Equal(t, http.StatusForbidden, serve(h, req))
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 60, // one token per second
		Now:               func() time.Time { return now },
	})(ok)

	req := httptest.NewRequest(http.MethodGet, "/nav", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(h, req))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Other clients have their own bucket.
	other := httptest.NewRequest(http.MethodGet, "/nav", nil)
	other.RemoteAddr = "198.51.100.1:1234"
	assert.Equal(t, http.StatusOK, serve(h, other))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(h, req))
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.New("test", "go")
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/sidebar", ok)

	serve(r, httptest.NewRequest(http.MethodGet, "/sidebar?path=/a/", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	routes := map[string]bool{}
	for _, f := range families {
		if f.GetName() != "sidenav_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "route" {
					routes[lp.GetValue()] = true
				}
			}
		}
	}
	assert.True(t, routes["/sidebar"])
	assert.True(t, routes["unmatched"] || routes["/*"], "unknown paths must not use the raw path: %v", routes)
	assert.False(t, routes["/missing"])
}
