package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/navigatorlink/navigatorlink/internal/api/middleware"
)

func rateLimitedHandler(cfg middleware.RateLimitConfig) http.Handler {
	return middleware.RequestID(
		middleware.RateLimitByIP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})),
	)
}

func serveFrom(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/navigator-links", http.NoBody)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPerMinute(t *testing.T) {
	cfg := middleware.PerMinute(42)
	assert.Equal(t, 42, cfg.RequestLimit)
	assert.Equal(t, time.Minute, cfg.WindowLength)
}

func TestRateLimitByIP_AllowsWithinLimit(t *testing.T) {
	handler := rateLimitedHandler(middleware.PerMinute(5))

	for i := 0; i < 5; i++ {
		rec := serveFrom(handler, "192.168.1.1:12345")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i+1)
	}
}

func TestRateLimitByIP_BlocksOverLimit(t *testing.T) {
	handler := rateLimitedHandler(middleware.PerMinute(2))

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serveFrom(handler, "10.0.0.1:12345").Code)
	}

	rec := serveFrom(handler, "10.0.0.1:12345")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	body := rec.Body.String()
	assert.Contains(t, body, "too-many-requests")
	assert.Contains(t, body, "Rate limit exceeded")
	assert.Contains(t, body, "/v1/navigator-links")
}

func TestRateLimitByIP_DifferentIPsHaveSeparateLimits(t *testing.T) {
	handler := rateLimitedHandler(middleware.PerMinute(1))

	assert.Equal(t, http.StatusOK, serveFrom(handler, "172.16.0.1:12345").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(handler, "172.16.0.1:12345").Code)
	assert.Equal(t, http.StatusOK, serveFrom(handler, "172.16.0.2:12345").Code)
}
