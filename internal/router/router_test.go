package router

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
)

func newTestRouter(t *testing.T, store *session.Store) *Router {
	t.Helper()
	fallback := func(c *gin.Context) { c.String(http.StatusOK, "dashboard-fallback") }
	return New(store, Config{}, fallback)
}

func TestUnknownPathServesFallback(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set("tok", nil))
	r := newTestRouter(t, store)

	for _, path := range []string{"/no/such/view", "/settings"} {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "path=%s", path)
		assert.Equal(t, "dashboard-fallback", w.Body.String(), "path=%s", path)
	}
}

func TestUnknownPathStillGuarded(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	r := newTestRouter(t, store)

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest("GET", "/no/such/view", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGuardedViewsAreNeverCached(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set("tok", nil))
	r := newTestRouter(t, store)

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest("GET", "/anything", nil))
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
}

func TestHealthEndpoints(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	r := newTestRouter(t, store)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "path=%s", path)
	}
}

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs()

	formatDate := funcs["formatDate"].(func(time.Time) string)
	assert.Equal(t, "—", formatDate(time.Time{}))
	assert.Equal(t, "Mar 15, 2026", formatDate(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)))

	riskClass := funcs["riskClass"].(func(string) string)
	assert.Equal(t, "badge-high", riskClass("High"))
	assert.Equal(t, "badge-unknown", riskClass("whatever"))

	statusClass := funcs["statusClass"].(func(string) string)
	assert.Equal(t, "status-overdue", statusClass("Overdue"))
	assert.Equal(t, "status-pending", statusClass("Pending"))
	assert.Equal(t, "status-completed", statusClass("Completed"))
}
