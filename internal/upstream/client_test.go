package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
	apperrors "github.com/chronic-risk-manager/community-health-frontend/pkg/errors"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(serverURL string, token string) *Client {
	return NewClient(Config{
		BaseURL: serverURL,
		Timeout: 2 * time.Second,
	}, staticToken(token), nil)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok-123")
	_, err := client.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	_, err := client.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestLoginSendsPasswordGrantForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "chw1", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		assert.Contains(t, r.PostForm, "scope")
		assert.Contains(t, r.PostForm, "client_id")
		assert.Contains(t, r.PostForm, "client_secret")

		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	token, err := client.Login(context.Background(), "chw1", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", token.AccessToken)
}

func TestClientSurfacesUpstreamDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Username already registered"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok")
	_, err := client.Register(context.Background(), &model.RegisterRequest{Username: "chw1"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Username already registered", appErr.Message)
}

func TestClientGenericErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok")
	_, err := client.GetPatient(context.Background(), 42)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "HTTP error! status: 404", appErr.Message)
}

func TestClientUnauthorizedTearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "stale")
	cleared := false
	client.OnUnauthorized = func() { cleared = true }

	_, err := client.ListPatients(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsSessionExpired(err))
	assert.True(t, cleared)
}

func TestLoginRejectionIsNotSessionExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))
	defer srv.Close()

	// Logged out, so no bearer token rides along with the grant.
	client := newTestClient(srv.URL, "")
	_, err := client.Login(context.Background(), "chw1", "wrong")
	require.Error(t, err)
	assert.False(t, apperrors.IsSessionExpired(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Incorrect username or password", appErr.Message)
}

func TestClientToleratesEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok")
	completedAt := time.Now().UTC()
	task, err := client.UpdateFollowUp(context.Background(), 7, &model.UpdateFollowUpRequest{
		Status:      model.FollowUpCompleted,
		CompletedAt: &completedAt,
	})
	require.NoError(t, err)
	assert.Zero(t, task.ID)
}

func TestClientUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL, "tok")
	_, err := client.Dashboard(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	assert.Contains(t, appErr.Message, "Failed to connect to the server")
}

func TestListFollowUpsStatusQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "tok")

	_, err := client.ListFollowUps(context.Background(), "Pending")
	require.NoError(t, err)
	assert.Equal(t, "status=Pending", gotQuery)

	_, err = client.ListFollowUps(context.Background(), "All")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)

	_, err = client.ListFollowUps(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}
