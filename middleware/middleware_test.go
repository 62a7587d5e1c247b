package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func request(r *gin.Engine, ip, forwarded string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":5555"
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_PerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(4))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	// burst of one for four requests per minute
	assert.Equal(t, http.StatusOK, request(r, "10.0.0.1", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, "10.0.0.1", "").Code)
	assert.Equal(t, http.StatusOK, request(r, "10.0.0.2", "").Code)
	assert.Equal(t, http.StatusOK, request(r, "10.0.0.1", "203.0.113.9, 10.0.0.1").Code)
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got string
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) { got = getClientIP(c) })

	request(r, "10.0.0.1", "")
	assert.Equal(t, "10.0.0.1", got)

	request(r, "10.0.0.1", " 203.0.113.9 , 10.0.0.1")
	assert.Equal(t, "203.0.113.9", got)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var scoped *zap.Logger
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		l, ok := c.Get("logger")
		require.True(t, ok)
		scoped = l.(*zap.Logger)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotNil(t, scoped)
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, int64(http.StatusNoContent), entry["status"])
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := request(r, "10.0.0.1", "")
	assert.Len(t, w.Header().Get(requestIDHeader), 36)
}
