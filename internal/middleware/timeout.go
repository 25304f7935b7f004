package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig represents timeout middleware configuration
type TimeoutConfig struct {
	Duration time.Duration
}

// DefaultTimeoutConfig returns default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Duration: 30 * time.Second,
	}
}

// Timeout adds a request deadline. When the deadline fires before the
// handler responds, the client gets a 504 and whatever the handler
// writes afterwards is discarded.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		tw := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = tw
		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				body, _ := json.Marshal(ErrorResponse{
					Code:    http.StatusGatewayTimeout,
					Message: "Request timeout",
					TraceID: c.GetString(ContextRequestID),
				})
				tw.timeout(body)
			}
		}
	}
}

// timeoutWriter serializes access to the response so the handler
// goroutine and the timeout branch never write concurrently. Once the
// timeout response is sent, the handler's late writes are dropped.
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	timedOut bool
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(s), nil
	}
	return w.ResponseWriter.WriteString(s)
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) WriteHeaderNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timeoutWriter) timeout(body []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut || w.ResponseWriter.Written() {
		return
	}
	w.timedOut = true
	w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	w.ResponseWriter.Write(body)
}
