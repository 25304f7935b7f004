package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiter throttles per client IP so one busy clinic workstation
// cannot exhaust the budget for everyone else.
type RateLimiter struct {
	config RateLimiterConfig

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastPrune time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	clientIdleEviction = 3 * time.Minute
	pruneInterval      = time.Minute
)

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		config:    config,
		clients:   make(map[string]*clientLimiter),
		lastPrune: time.Now(),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.clients[clientIP]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.config.Rate, rl.config.Burst)}
		rl.clients[clientIP] = cl
	}
	cl.lastSeen = now

	if now.Sub(rl.lastPrune) > pruneInterval {
		rl.prune(now)
	}
	return cl.limiter.Allow()
}

// prune drops limiters for clients that went quiet. Caller holds mu.
func (rl *RateLimiter) prune(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > clientIdleEviction {
			delete(rl.clients, ip)
		}
	}
	rl.lastPrune = now
}
