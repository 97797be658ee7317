package middleware

import (
	"net/http"
	"strings"

	"github.com/chainsync/backend/internal/domain/shared"
	"github.com/chainsync/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// Context keys for authenticated requests
const (
	ClaimsKey   = "auth_claims"
	ClientIDKey = "auth_client_id"

	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// Auth validates the bearer token on every request and stores the claims
// in the gin context. Probes and preflights never reach this middleware;
// they are registered outside the authenticated group.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		if header == "" {
			unauthorized(c, "missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthorized(c, "authorization header must use the Bearer scheme")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			unauthorized(c, "missing token")
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ClientIDKey, claims.ClientID)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    shared.CodeUnauthorized,
			"message": message,
		},
	})
}

// GetClientID returns the authenticated client ID, if any
func GetClientID(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
