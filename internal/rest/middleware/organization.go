package middleware

import (
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/tenancy"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

// OrganizationMiddleware resolves the organization a request acts for and
// requires an active membership in it. The explicit organization comes from the
// :org_id path segment, then the X-Organization-ID header, then the token hint.
type OrganizationMiddleware struct {
	resolver *tenancy.Resolver
	rbac     *rbac.RBACService
	logger   *logger.Logger
}

func NewOrganizationMiddleware(resolver *tenancy.Resolver, rbacService *rbac.RBACService, logger *logger.Logger) *OrganizationMiddleware {
	return &OrganizationMiddleware{
		resolver: resolver,
		rbac:     rbacService,
		logger:   logger,
	}
}

func (m *OrganizationMiddleware) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	userID := types.GetUserID(ctx)

	explicit := c.Param("org_id")
	if explicit == "" {
		explicit = c.GetHeader(types.HeaderOrganizationID)
	}
	if explicit == "" {
		explicit = types.GetOrganizationID(ctx)
	}

	orgID, err := m.resolver.Resolve(ctx, userID, explicit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	role, ok := m.rbac.MemberRole(ctx, userID, orgID)
	if !ok {
		m.logger.Infow("rejected request for foreign organization",
			"user_id", userID,
			"organization_id", orgID,
			"path", c.Request.URL.Path,
		)
		abortWithError(c, ierr.NewError("user is not a member of the organization").
			WithHint("You do not have access to this organization").
			WithReportableDetails(map[string]any{
				"organization_id": orgID,
			}).
			Mark(ierr.ErrPermissionDenied))
		return
	}

	ctx = types.SetOrganizationID(ctx, orgID)
	ctx = types.SetRole(ctx, role)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
