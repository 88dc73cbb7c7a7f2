// Package tenancy decides which organization a request acts for and opens
// units of work confined to one organization.
package tenancy

import (
	"context"

	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/user"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

type Resolver struct {
	users       user.Repository
	memberships membership.Repository
	logger      *logger.Logger
}

func NewResolver(users user.Repository, memberships membership.Repository, logger *logger.Logger) *Resolver {
	return &Resolver{
		users:       users,
		memberships: memberships,
		logger:      logger,
	}
}

// Resolve returns the organization the request acts for. An explicit id always
// wins, even one the user is not a member of; the permission check rejects it
// later. Otherwise the user's last active organization is used while they are
// still a member, then their oldest active membership.
func (r *Resolver) Resolve(ctx context.Context, userID, explicitOrgID string) (string, error) {
	if explicitOrgID != "" {
		return explicitOrgID, nil
	}

	if userID == "" {
		return "", noOrganization()
	}

	u, err := r.users.GetByID(ctx, userID)
	if err != nil && !ierr.IsNotFound(err) {
		return "", err
	}

	if u != nil && u.LastActiveOrganizationID != nil && *u.LastActiveOrganizationID != "" {
		preferred := *u.LastActiveOrganizationID
		_, err := r.memberships.GetActive(ctx, preferred, userID)
		if err == nil {
			return preferred, nil
		}
		if !ierr.IsNotFound(err) {
			return "", err
		}
		r.logger.Debugw("ignoring stale organization preference",
			"user_id", userID,
			"organization_id", preferred,
		)
	}

	memberships, err := r.memberships.ListActiveByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(memberships) == 0 {
		return "", noOrganization()
	}
	return memberships[0].OrganizationID, nil
}

func noOrganization() error {
	return ierr.NewError("user has no active organization").
		WithHint("Create or join an organization to continue").
		Mark(ierr.ErrNoOrganizationContext)
}

// RunAs runs fn in a transaction acting for orgID only. The organization is
// pinned to the database session for row level security and released when the
// transaction ends. It cannot switch organization inside an open transaction.
func RunAs(ctx context.Context, db postgres.IClient, orgID string, fn func(ctx context.Context) error) error {
	if orgID == "" {
		return noOrganization()
	}

	if _, ok := postgres.GetTx(ctx); ok {
		if current := types.GetOrganizationID(ctx); current != "" && current != orgID {
			return ierr.NewError("cannot switch organization inside a transaction").
				WithReportableDetails(map[string]any{
					"organization_id":         orgID,
					"current_organization_id": current,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
	}

	scoped := types.SetOrganizationID(ctx, orgID)
	return db.WithTx(scoped, fn)
}
