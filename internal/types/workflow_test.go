package types

import (
	"testing"

	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWorkflow_Check(t *testing.T) {
	assert.NoError(t, RFIWorkflow.Check(EntityTypeRFI, RFIStatusOpen, RFIStatusAnswered))

	err := ProposalWorkflow.Check(EntityTypeProposal, ProposalStatusSigned, ProposalStatusDraft)
	assert.True(t, ierr.IsInvalidTransition(err))
	assert.Equal(t, 409, ierr.HTTPStatusFromErr(err))
	assert.Equal(t, ierr.ErrCodeInvalidTransition, ierr.CodeFromErr(err))
}

func TestWorkflow_Validate(t *testing.T) {
	assert.NoError(t, SubmittalWorkflow.Validate(EntityTypeSubmittal, SubmittalStatusApprovedAsNoted))
	assert.True(t, ierr.IsValidation(SubmittalWorkflow.Validate(EntityTypeSubmittal, "bogus")))
}

func TestRole_AtLeastIsMonotonic(t *testing.T) {
	for i, held := range Roles {
		for j, min := range Roles {
			assert.Equal(t, i >= j, held.AtLeast(min), "%s at least %s", held, min)
		}
	}
	assert.False(t, Role("superuser").AtLeast(RoleReadOnly))
}

func TestModuleKey_AlwaysActive(t *testing.T) {
	assert.True(t, ModuleProjects.IsAlwaysActive())
	assert.True(t, ModuleDocuments.IsAlwaysActive())
	assert.False(t, ModuleEstimating.IsAlwaysActive())
	assert.Error(t, ModuleKey("nope").Validate())
}
