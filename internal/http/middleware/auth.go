package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"report-service/internal/auth"
	"report-service/internal/model"
)

const (
	claimsKey    = "tokenClaims"
	roleKey      = "accessRole"
	authHeader   = "Authorization"
	bearerPrefix = "Bearer"
)

// Auth validates the bearer token and stores the caller's normalized access
// role in the request context. Unknown role claims collapse to the most
// restrictive role.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(authHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := parser.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Set(roleKey, model.ParseRole(claims.Role))
		c.Next()
	}
}

func MustRole(c *gin.Context) (model.Role, bool) {
	value, exists := c.Get(roleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(model.Role)
	if !ok {
		return "", false
	}
	return role, true
}
