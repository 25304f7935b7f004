package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/dental-admin-api/pkg/auth"
)

const contextClaims = "auth_claims"

type AuthMiddleware struct {
	jwt auth.JWTService
}

func NewAuthMiddleware(jwt auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate verifies the JWT token and sets clinician info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing authorization header",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid authorization format",
			})
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid token",
			})
			return
		}

		c.Set(contextClaims, claims)
		c.Next()
	}
}

// RequireRole restricts a route to clinicians holding one of the given
// roles.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "unauthorized",
			})
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "permission denied",
		})
	}
}

// ClaimsFromContext returns the verified token claims set by
// Authenticate, or nil on unauthenticated requests.
func ClaimsFromContext(c *gin.Context) *auth.TokenClaims {
	v, ok := c.Get(contextClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
