package middleware

import (
	"crypto/subtle"

	"github.com/buildline/buildline/internal/config"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

// BillingWebhookMiddleware authenticates the billing provider by its shared secret
func BillingWebhookMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	secret := []byte(cfg.Billing.WebhookSecret)

	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(types.HeaderBillingSecret))
		if len(secret) == 0 || subtle.ConstantTimeCompare(provided, secret) != 1 {
			abortWithError(c, ierr.NewError("invalid billing webhook secret").
				WithHint("Unauthorized").
				Mark(ierr.ErrUnauthorized))
			return
		}
		c.Next()
	}
}
