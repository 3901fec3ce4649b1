package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS is deliberately permissive: the checkout and verify endpoints are
// called straight from the storefront browser. The webhook endpoint is
// server-to-server and must not get this middleware.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
