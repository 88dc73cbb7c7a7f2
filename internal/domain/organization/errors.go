package organization

import (
	ierr "github.com/buildline/buildline/internal/errors"
)

func NewOrganizationNotFoundError(id string) error {
	return ierr.NewError("organization not found").
		WithHintf("Organization %s was not found", id).
		WithReportableDetails(map[string]any{"organization_id": id}).
		Mark(ierr.ErrNotFound)
}

func NewOrganizationArchivedError(id string) error {
	return ierr.NewError("organization is archived").
		WithHint("This organization has been archived").
		WithReportableDetails(map[string]any{"organization_id": id}).
		Mark(ierr.ErrInvalidOperation)
}
