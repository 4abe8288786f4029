package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
	"github.com/chronic-risk-manager/community-health-frontend/internal/router"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/upstream"
)

func newTestApp(t *testing.T, backend http.Handler) (http.Handler, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client := upstream.NewClient(upstream.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, store, nil)
	client.OnUnauthorized = func() { _ = store.Clear() }

	r := router.New(store, router.Config{
		TemplatesGlob: "../../../web/templates/*.tmpl",
	}, func(c *gin.Context) { c.Status(http.StatusOK) }, NewHandler(client, store))
	return r.Engine(), store
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginStoresSessionAndRedirects(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			_ = json.NewEncoder(w).Encode(model.TokenResponse{AccessToken: "tok-abc", TokenType: "bearer"})
		case "/users/me":
			assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(model.User{ID: 1, Username: "chw1", FullName: "Asha Verma"})
		default:
			http.NotFound(w, r)
		}
	}))

	form := url.Values{"username": {"chw1"}, "password": {"secret"}}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, postForm("/login", form))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "tok-abc", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "chw1", store.User().Username)
}

func TestLoginWrongPasswordShowsDetail(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))

	form := url.Values{"username": {"chw1"}, "password": {"nope"}}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, postForm("/login", form))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Incorrect username or password")
	// The entered username survives the re-render.
	assert.Contains(t, body, `value="chw1"`)
	assert.Empty(t, store.Token())
}

func TestLoginEmptyTokenResponse(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	form := url.Values{"username": {"chw1"}, "password": {"secret"}}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, postForm("/login", form))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Token not received from server.")
	assert.Empty(t, store.Token())
}

func TestLoginFormShowsExpiredNotice(t *testing.T) {
	app, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest("GET", "/login?expired=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your session has expired. Please sign in again.")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	app, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	}))

	form := url.Values{
		"username":         {"chw1"},
		"full_name":        {"Asha Verma"},
		"password":         {"longenough"},
		"confirm_password": {"different"},
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, postForm("/register", form))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords don&#39;t match")
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.User{ID: 2, Username: "chw2"})
	}))

	form := url.Values{
		"username":         {"chw2"},
		"full_name":        {"Ravi Kumar"},
		"password":         {"longenough"},
		"confirm_password": {"longenough"},
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, postForm("/register", form))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	require.NoError(t, store.Set("tok", &model.User{Username: "chw1"}))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest("POST", "/logout", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, store.Token())
}
