package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marroking/internal/auth"
)

// AuthRequired validates the bearer token and stores the caller's identity
// in the request context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ClaimsFromRequest(c, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// ClaimsFromRequest extracts and validates the Authorization header of a
// request without aborting it; handlers with optional auth use it directly.
func ClaimsFromRequest(c *gin.Context, secret string) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, auth.ErrInvalidToken
	}

	return auth.ParseToken(secret, parts[1])
}
