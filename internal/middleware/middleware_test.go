package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/hydration_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	tokens map[string]*domain.User
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, errors.New("unauthorized")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(auth))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		user, ok := GetUserFromContext(c)
		if !ok || user.UserID != id {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthRouter(stubAuthenticator{tokens: map[string]*domain.User{
		"good": {UserID: "u1"},
	}})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer stale", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"scheme is case-insensitive", "bearer good", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "u1", w.Body.String())
			}
		})
	}
}

func TestSubscriptionKey(t *testing.T) {
	r := gin.New()
	r.PATCH("/sub", SubscriptionKey("s3cret"), func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	send := func(header, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/sub", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set(SubscriptionKeyHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("s3cret", `{"subscription":"pro"}`).Code)
	assert.Equal(t, http.StatusForbidden, send("nope", `{"subscription":"pro"}`).Code)
	assert.Equal(t, http.StatusForbidden, send("", `{"subscription":"pro"}`).Code)

	w := send("", `{"subscription":"pro","key":"s3cret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subscription":"pro"`, "body is still readable downstream")
}

func TestSubscriptionKey_BodyTooLarge(t *testing.T) {
	r := gin.New()
	r.PATCH("/sub", SubscriptionKey("s3cret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	body := `{"key":"s3cret","pad":"` + strings.Repeat("a", subscriptionBodyLimit) + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/sub", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"code":413`)
}

func TestSubscriptionKey_DisabledWhenEmpty(t *testing.T) {
	r := gin.New()
	r.PATCH("/sub", SubscriptionKey(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/sub", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"code":429,"message":"Too many requests. Please try again later."}`, w.Body.String())

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(GetLoggerFromCtx(context.Background())))
	r.GET("/health", func(c *gin.Context) {
		assert.NotNil(t, GetLoggerFromCtx(c.Request.Context()))
		c.String(http.StatusOK, "OK")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
