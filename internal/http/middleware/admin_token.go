package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken gates the back-office endpoints. Identity proper lives
// with the external auth provider; this service only checks a shared token.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "admin API disabled",
				"request_id": GetRequestID(c),
			})
			return
		}

		got := c.GetHeader(HeaderAdminToken)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}
