package middleware

import (
	"time"

	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware returns a middleware that captures errors and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryTenantScope tags the request hub with the resolved organization, user and role.
// Must run after the organization middleware.
func SentryTenantScope(c *gin.Context) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		c.Next()
		return
	}

	ctx := c.Request.Context()
	hub.Scope().SetTags(map[string]string{
		"organization_id": types.GetOrganizationID(ctx),
		"role":            string(types.GetRole(ctx)),
		"request_id":      types.GetRequestID(ctx),
	})
	hub.Scope().SetUser(sentry.User{ID: types.GetUserID(ctx)})

	c.Next()
}
