package middleware

import (
	"strings"

	"github.com/buildline/buildline/internal/auth"
	"github.com/buildline/buildline/internal/config"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware validates the bearer token and sets the user on the
// request context. The organization carried by the token is only a hint for
// OrganizationMiddleware, membership is checked there.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortWithError(c, ierr.NewError("missing authorization header").
				WithHint("Authentication required").
				Mark(ierr.ErrUnauthorized))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, ierr.NewError("malformed authorization header").
				WithHint("Invalid authorization header format").
				Mark(ierr.ErrUnauthorized))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			abortWithError(c, err)
			return
		}

		if claims == nil || claims.UserID == "" {
			abortWithError(c, ierr.NewError("token without user").
				WithHint("Invalid token claims").
				Mark(ierr.ErrUnauthorized))
			return
		}

		ctx := types.SetUserID(c.Request.Context(), claims.UserID)
		ctx = types.SetJWT(ctx, tokenString)
		if claims.OrganizationID != "" {
			ctx = types.SetOrganizationID(ctx, claims.OrganizationID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// abortWithError hands err to ErrorHandler and stops the chain
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
