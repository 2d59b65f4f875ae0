package middleware

import (
	"net/http"
	"strings"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/services"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireAuth rejects requests without a valid bearer token. A missing
// or unverifiable identity is always 401, before any asset lookup runs;
// 403 is reserved for authenticated callers that lack entitlement.
func RequireAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity stored by RequireAuth.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}
