package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newRateLimitedEngine(config RateLimiterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewRateLimiter(config).RateLimit())
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func doRequest(engine *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitThrottlesBusyClient(t *testing.T) {
	engine := newRateLimitedEngine(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 2})

	assert.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(engine, "10.0.0.1:5000"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	engine := newRateLimitedEngine(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 1})

	assert.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(engine, "10.0.0.1:5000"))

	// A different workstation still has its own budget.
	assert.Equal(t, http.StatusOK, doRequest(engine, "10.0.0.2:5000"))
}
