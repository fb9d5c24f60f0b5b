package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlibrary-backend/internal/domains/librarian/service"
	libraryModel "smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/shared/middleware"
)

type fakeLibrarian struct {
	reply   service.Reply
	queries []string
}

func (f *fakeLibrarian) RecommendText(_ context.Context, query string) service.Reply {
	f.queries = append(f.queries, query)
	return f.reply
}

func (f *fakeLibrarian) SummaryText(_ context.Context, bookID string) (service.Reply, error) {
	if bookID != "8" {
		return service.Reply{}, libraryModel.NewBookNotFoundError(bookID)
	}
	return f.reply, nil
}

type countingCache struct {
	counts map[string]int64
}

func (c *countingCache) Increment(_ context.Context, key string) (int64, error) {
	c.counts[key]++
	return c.counts[key], nil
}

func (c *countingCache) Expire(context.Context, string, time.Duration) error { return nil }

func (c *countingCache) Ping(context.Context) error { return nil }

func newRouter(librarian service.ServiceInterface, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLibrarianHandler(librarian)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, "u1")
		c.Next()
	})
	v1.GET("/librarian/greeting", h.Greeting)

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(&countingCache{counts: map[string]int64{}}, middleware.RateLimitConfig{
		Scope:  "librarian",
		Limit:  limit,
		Window: time.Minute,
		Now:    func() time.Time { return time.Date(2026, time.October, 16, 8, 0, 0, 0, time.UTC) },
	}))
	limited.POST("/librarian/recommend", h.Recommend)
	limited.GET("/books/:id/summary", h.Summary)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) service.Reply {
	t.Helper()
	var env struct {
		Data service.Reply `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestRecommend(t *testing.T) {
	librarian := &fakeLibrarian{reply: service.Reply{Text: "Try **Dune**."}}
	r := newRouter(librarian, 10)

	w := do(r, http.MethodPost, "/api/v1/librarian/recommend", `{"query":"  sand and spice  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Try **Dune**.", decodeReply(t, w).Text)
	assert.Equal(t, []string{"sand and spice"}, librarian.queries)
}

func TestRecommend_FallbackIsStillOK(t *testing.T) {
	librarian := &fakeLibrarian{reply: service.Reply{Text: service.RecommendFallback, Fallback: true}}
	r := newRouter(librarian, 10)

	w := do(r, http.MethodPost, "/api/v1/librarian/recommend", `{"query":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	reply := decodeReply(t, w)
	assert.True(t, reply.Fallback)
	assert.Equal(t, service.RecommendFallback, reply.Text)
}

func TestRecommend_RejectsInvalidBody(t *testing.T) {
	r := newRouter(&fakeLibrarian{}, 10)

	for _, body := range []string{`{}`, `{"query":"   "}`, `not json`} {
		w := do(r, http.MethodPost, "/api/v1/librarian/recommend", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRecommend_RateLimited(t *testing.T) {
	r := newRouter(&fakeLibrarian{reply: service.Reply{Text: "ok"}}, 2)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/librarian/recommend", `{"query":"a"}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/librarian/recommend", `{"query":"b"}`).Code)
	w := do(r, http.MethodPost, "/api/v1/librarian/recommend", `{"query":"c"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestSummary(t *testing.T) {
	r := newRouter(&fakeLibrarian{reply: service.Reply{Text: service.SummaryFallback, Fallback: true}}, 10)

	w := do(r, http.MethodGet, "/api/v1/books/8/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.SummaryFallback, decodeReply(t, w).Text)

	w = do(r, http.MethodGet, "/api/v1/books/404/summary", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), libraryModel.ErrCodeBookNotFound)
}

func TestGreeting(t *testing.T) {
	r := newRouter(&fakeLibrarian{}, 10)

	w := do(r, http.MethodGet, "/api/v1/librarian/greeting", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AI Assistant")
}
