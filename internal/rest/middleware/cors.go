package middleware

import (
	"net/http"
	"strings"

	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CORSMiddleware handles CORS headers. An empty allow list allows any origin.
func CORSMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	allowed := cfg.Server.AllowedOrigins
	allowHeaders := strings.Join([]string{
		"Content-Type",
		types.HeaderAuthorization,
		types.HeaderRequestID,
		types.HeaderOrganizationID,
	}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case len(allowed) == 0:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(allowed, origin):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
