package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlibrary-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =====================================================
// FAKES
// =====================================================

type fakeSessions struct {
	userID string
	role   string
	active bool
}

func (f *fakeSessions) ActiveSession() (string, string, bool) {
	return f.userID, f.role, f.active
}

type memoryCache struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = ttl
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return m.err }

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// =====================================================
// AUTH
// =====================================================

func newAuthRouter(manager *jwt.Manager, sessions SessionResolver) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(manager, sessions), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.String(http.StatusOK, userID+":"+c.GetString(ContextKeyRole))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	token, _, err := manager.GenerateSessionToken("u1", "alex@smartlib.com")
	require.NoError(t, err)
	otherToken, _, err := jwt.NewManager("other", time.Hour).GenerateSessionToken("u1", "alex@smartlib.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		sessions *fakeSessions
		status   int
		body     string
	}{
		{"valid token and active session", token, &fakeSessions{"u1", "USER", true}, http.StatusOK, "u1:USER"},
		{"missing token", "", &fakeSessions{"u1", "USER", true}, http.StatusUnauthorized, ""},
		{"bad signature", otherToken, &fakeSessions{"u1", "USER", true}, http.StatusUnauthorized, ""},
		{"logged out", token, &fakeSessions{active: false}, http.StatusUnauthorized, ""},
		{"different user", token, &fakeSessions{"u2", "USER", true}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(newAuthRouter(manager, tt.sessions), http.MethodGet, "/me", tt.token)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`)
			}
		})
	}
}

func TestAuthMiddleware_RejectsMalformedHeader(t *testing.T) {
	r := newAuthRouter(jwt.NewManager("secret", time.Hour), &fakeSessions{"u1", "USER", true})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================
// ADMIN
// =====================================================

func TestAdminMiddleware(t *testing.T) {
	for role, status := range map[string]int{"ADMIN": http.StatusOK, "USER": http.StatusForbidden, "": http.StatusForbidden} {
		t.Run("role "+role, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", func(c *gin.Context) {
				if role != "" {
					c.Set(ContextKeyRole, role)
				}
				c.Next()
			}, AdminMiddleware(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := perform(r, http.MethodGet, "/admin", "")

			assert.Equal(t, status, w.Code)
		})
	}
}

// =====================================================
// RATE LIMIT
// =====================================================

func newLimitedRouter(counter *memoryCache, limit int) *gin.Engine {
	fixed := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	r := gin.New()
	r.GET("/ask", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "u1")
		c.Next()
	}, RateLimit(counter, RateLimitConfig{
		Scope:  "librarian",
		Limit:  limit,
		Window: time.Minute,
		Now:    func() time.Time { return fixed },
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimit_RejectsAfterQuota(t *testing.T) {
	counter := newMemoryCache()
	r := newLimitedRouter(counter, 2)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ask", "").Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ask", "").Code)
	w := perform(r, http.MethodGet, "/ask", "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Len(t, counter.expires, 1)
	for _, ttl := range counter.expires {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestRateLimit_FailsOpenWhenCacheDown(t *testing.T) {
	counter := newMemoryCache()
	counter.err = errors.New("connection refused")
	r := newLimitedRouter(counter, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ask", "").Code)
	}
}

// =====================================================
// REQUEST ID / CORS / RECOVERY
// =====================================================

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyRequestID))
	})

	w := perform(r, http.MethodGet, "/", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
