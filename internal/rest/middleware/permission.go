package middleware

import (
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

// PermissionMiddleware handles role and module checks for organization scoped routes
type PermissionMiddleware struct {
	rbacService *rbac.RBACService
	logger      *logger.Logger
}

// NewPermissionMiddleware creates a new permission middleware instance
func NewPermissionMiddleware(rbacService *rbac.RBACService, logger *logger.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{
		rbacService: rbacService,
		logger:      logger,
	}
}

// RequireRole rejects members below minRole. Called explicitly in route definitions.
func (pm *PermissionMiddleware) RequireRole(minRole types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := types.GetUserID(ctx)
		orgID := types.GetOrganizationID(ctx)

		if err := pm.rbacService.Authorize(ctx, userID, orgID, minRole); err != nil {
			pm.logger.Infow("permission denied",
				"user_id", userID,
				"organization_id", orgID,
				"required_role", minRole,
				"path", c.Request.URL.Path,
			)
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireOwner is RequireRole for the owner role
func (pm *PermissionMiddleware) RequireOwner() gin.HandlerFunc {
	return pm.RequireRole(types.RoleOwner)
}

// RequireModule rejects requests for modules the organization has not activated
func (pm *PermissionMiddleware) RequireModule(key types.ModuleKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := pm.rbacService.AuthorizeModule(ctx, types.GetOrganizationID(ctx), key); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
