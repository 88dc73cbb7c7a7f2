package middleware

import (
	"github.com/buildline/buildline/internal/service"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

// SubscriptionMiddleware applies the billing gate to organization scoped
// routes. It must run after OrganizationMiddleware.
func SubscriptionMiddleware(gate service.SubscriptionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := gate.Check(ctx, types.GetOrganizationID(ctx), c.Request.Method, c.Request.URL.Path); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
