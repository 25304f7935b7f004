package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge         int
	Private        bool
	NoStore        bool
	NoCache        bool
	MustRevalidate bool
	Vary           []string
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:         60,
		Private:        true,
		MustRevalidate: true,
		Vary:           []string{"Accept", "Authorization"},
	}
}

// Cache adds cache control headers to responses
func Cache(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		directives := make([]string, 0)

		if config.Private {
			directives = append(directives, "private")
		} else {
			directives = append(directives, "public")
		}
		if config.MaxAge > 0 {
			directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
		}
		if config.NoStore {
			directives = append(directives, "no-store")
		}
		if config.NoCache {
			directives = append(directives, "no-cache")
		}
		if config.MustRevalidate {
			directives = append(directives, "must-revalidate")
		}

		if len(directives) > 0 {
			c.Header("Cache-Control", strings.Join(directives, ", "))
		}
		if len(config.Vary) > 0 {
			c.Header("Vary", strings.Join(config.Vary, ", "))
		}

		c.Next()
	}
}
