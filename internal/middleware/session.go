package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key holding the validated session id.
const SessionIDKey = "session_id"

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// SessionMiddleware creates a middleware that validates session tokens
func SessionMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		sessionID, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id set by SessionMiddleware.
func SessionID(c *gin.Context) (string, bool) {
	id := c.GetString(SessionIDKey)
	return id, id != ""
}
