package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/conversa/internal/api/httperror"
	"github.com/liliang-cn/conversa/internal/domain"
)

// Auth returns an API key authentication middleware for the admin routes.
// An empty key disables the check.
func Auth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			httperror.Write(c, domain.ErrUnauthorized)
			return
		}

		c.Next()
	}
}
