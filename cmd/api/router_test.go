package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlibrary-backend/internal/config"
	"smartlibrary-backend/internal/domains/librarian/service"
	"smartlibrary-backend/internal/domains/library/store"
	"smartlibrary-backend/pkg/container"
)

type stubCache struct{ counts map[string]int64 }

func (s *stubCache) Increment(_ context.Context, key string) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}
func (s *stubCache) Expire(context.Context, string, time.Duration) error { return nil }
func (s *stubCache) Ping(context.Context) error                          { return nil }

type stubCompletion struct{ err error }

func (s stubCompletion) Complete(context.Context, string, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "Try **Dune** by Frank Herbert.", nil
}

func newTestRouter(t *testing.T, completionErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Environment: "test", Version: "test"},
		JWT: config.JWTConfig{Secret: "router-test", AccessTokenExpiry: 60},
		Librarian: config.LibrarianConfig{
			Model:           "test-model",
			TimeoutSeconds:  5,
			RatePerMinute:   100,
			BreakerFailures: 5,
			BreakerCooldown: 30,
		},
	}

	c, err := container.Build(context.Background(), cfg,
		container.WithCache(&stubCache{counts: map[string]int64{}}),
		container.WithCompletionClient(stubCompletion{err: completionErr}),
		container.WithSeed(store.DefaultSeed(), store.WithClock(func() time.Time {
			return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
		})),
	)
	require.NoError(t, err)
	return SetupRouter(c)
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()

	w := call(r, http.MethodPost, "/api/v1/auth/login", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data.AccessToken
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	w := call(r, http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"librarian":"closed"`)

	w = call(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smartlibrary_api_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/books/1/borrow"},
		{http.MethodGet, "/api/v1/notifications"},
		{http.MethodGet, "/api/v1/admin/dashboard"},
		{http.MethodPost, "/api/v1/librarian/recommend"},
	} {
		w := call(r, route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestAdminRouteFollowsRoleToggle(t *testing.T) {
	r := newTestRouter(t, nil)
	token := login(t, r)

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/v1/admin/dashboard", token, "").Code)
	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/v1/users/me/role", token, "").Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/admin/dashboard", token, "").Code)
}

func TestBorrowShowsUpInProfileAndNotifications(t *testing.T) {
	r := newTestRouter(t, nil)
	token := login(t, r)

	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/v1/books/3/borrow", token, "").Code)

	w := call(r, http.MethodGet, "/api/v1/users/me/borrowed", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Design Systems 101")

	w = call(r, http.MethodGet, "/api/v1/notifications", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book Borrowed")
}

func TestLibrarianEndpoints(t *testing.T) {
	t.Run("model reply", func(t *testing.T) {
		r := newTestRouter(t, nil)
		token := login(t, r)

		w := call(r, http.MethodPost, "/api/v1/librarian/recommend", token, `{"query":"desert"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "**Dune**")
	})

	t.Run("fallback on failure", func(t *testing.T) {
		r := newTestRouter(t, errors.New("service unavailable"))
		token := login(t, r)

		w := call(r, http.MethodPost, "/api/v1/librarian/recommend", token, `{"query":"desert"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), service.RecommendFallback)

		w = call(r, http.MethodGet, "/api/v1/books/8/summary", token, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), service.SummaryFallback)
	})
}
