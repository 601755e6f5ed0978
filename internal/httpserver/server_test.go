package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/sidenav/internal/config"
	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metrics"
)

func sampleStore(t *testing.T) *domain.Store {
	t.Helper()
	store, err := domain.Load(domain.RawConfig{
		Site: domain.Site{Title: "Notes", Base: "/blog/"},
		Nav: []domain.RawNavEntry{
			{Text: "Home", Link: "/"},
			{Text: "Web", Items: []domain.RawNavEntry{{Text: "JavaScript", Link: "/web/javascript/"}}},
		},
		Sidebar: []domain.RawSection{
			{Key: "/web/", Groups: []domain.RawGroup{{Title: "Web", Children: []domain.RawChild{domain.Slug("intro")}}}},
			{Key: "/web/javascript/", Groups: []domain.RawGroup{
				{Title: "Intro", Path: "/web/javascript/"},
				{Title: "Book", Children: []domain.RawChild{domain.Slug("Chapter-01")}},
			}},
		},
	})
	require.NoError(t, err)
	return store
}

type testEnv struct {
	handler http.Handler
	index   *index.RevisionIndex
	trigger chan struct{}
}

func newTestEnv(t *testing.T, publish bool, mutate ...func(*deps.Deps)) testEnv {
	t.Helper()
	idx := index.NewRevisionIndex(5)
	if publish {
		idx.Publish(&index.Revision{ID: "abc123", Store: sampleStore(t), LoadedAt: time.Now(), Source: "file"})
	}
	trigger := make(chan struct{}, 1)

	d := deps.Deps{
		Logger:        logger.NewNop(),
		StartTime:     time.Now(),
		Version:       "test",
		TimeNow:       time.Now,
		RateBurst:     100,
		RatePerMin:    600,
		Index:         idx,
		Metrics:       metrics.New("test", "go"),
		ReloadTrigger: trigger,
	}
	for _, m := range mutate {
		m(&d)
	}

	srv := New(&config.Config{ListenPort: ":0"}, d.Logger, d)
	return testEnv{handler: srv.Handler(), index: idx, trigger: trigger}
}

func (e testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestSidebarEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "longest prefix", target: "/sidebar?path=/web/javascript/Chapter-01", wantStatus: http.StatusOK, wantBody: `"key":"/web/javascript/"`},
		{name: "shorter prefix", target: "/sidebar?path=/web/css/", wantStatus: http.StatusOK, wantBody: `"key":"/web/"`},
		{name: "missing path", target: "/sidebar", wantStatus: http.StatusBadRequest, wantBody: "missing path"},
		{name: "no match", target: "/sidebar?path=/tech/", wantStatus: http.StatusNotFound, wantBody: "no sidebar section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestSidebarEndpoint_RevisionHeader(t *testing.T) {
	rec := newTestEnv(t, true).do(t, http.MethodGet, "/sidebar?path=/web/")
	assert.Equal(t, "abc123", rec.Header().Get("X-Nav-Revision"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestEndpointsBeforeFirstRevision(t *testing.T) {
	env := newTestEnv(t, false)

	for _, target := range []string{"/sidebar?path=/web/", "/nav", "/links", "/tree", "/readyz"} {
		rec := env.do(t, http.MethodGet, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}

func TestNavEndpoint(t *testing.T) {
	rec := newTestEnv(t, true).do(t, http.MethodGet, "/nav")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Notes"`)
	assert.Contains(t, rec.Body.String(), `"text":"JavaScript"`)
}

func TestLinksEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/links")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"count":5,"links":["/web/intro","/web/javascript/","/web/javascript/Chapter-01","/","/web/javascript/"]}`,
		rec.Body.String(),
	)

	rec = env.do(t, http.MethodGet, "/links?base=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/blog/web/intro"`)

	rec = env.do(t, http.MethodGet, "/links?base=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTreeEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/tree?path=/web/javascript/x")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "/web/javascript/\n"))
	assert.Contains(t, rec.Body.String(), "Intro (/web/javascript/)")

	rec = env.do(t, http.MethodGet, "/tree")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Notes\n"))

	rec = env.do(t, http.MethodGet, "/tree?path=/nope/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/validate")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)

	_, err := domain.Load(domain.RawConfig{
		Sidebar: []domain.RawSection{{Key: "/a/", Groups: []domain.RawGroup{{Path: "/a/"}}}},
	})
	require.Error(t, err)
	env.index.RecordFailure(fmt.Errorf("revision ffff rejected: %w", err))

	rec = env.do(t, http.MethodGet, "/validate")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"revision":"abc123"`)
	assert.Contains(t, body, `schema: sidebar[\"/a/\"][0]: title is required`)
}

func TestReloadEndpoint(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/reload")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// Trigger channel is full until the reloader drains it.
	rec = env.do(t, http.MethodPost, "/reload")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	<-env.trigger
}

func TestRevisionsEndpoint(t *testing.T) {
	rec := newTestEnv(t, true).do(t, http.MethodGet, "/revisions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"abc123"`)
	assert.Contains(t, rec.Body.String(), `"current":true`)
}

func TestProbes(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = env.do(t, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready":true`)

	rec = env.do(t, http.MethodGet, "/infra")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mode":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, true)
	env.do(t, http.MethodGet, "/sidebar?path=/web/")

	rec := env.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `sidenav_section_lookups_total{result="hit"} 1`)
	assert.Contains(t, string(body), `route="/sidebar"`)
}

func TestAdminEndpointsRespectCIDRs(t *testing.T) {
	env := newTestEnv(t, true, func(d *deps.Deps) {
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
	})

	// httptest requests come from 192.0.2.1
	rec := env.do(t, http.MethodGet, "/validate")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/sidebar?path=/web/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicEndpointsAreRateLimited(t *testing.T) {
	env := newTestEnv(t, true, func(d *deps.Deps) {
		d.RateBurst = 1
		d.RatePerMin = 1
	})

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/nav").Code)
	assert.Equal(t, http.StatusTooManyRequests, env.do(t, http.MethodGet, "/nav").Code)
}
