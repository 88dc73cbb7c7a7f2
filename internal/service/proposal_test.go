package service

import (
	"context"
	"errors"
	"testing"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/estimate"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ProposalServiceSuite struct {
	ServiceSuite
	service  ProposalService
	estimate *estimate.Estimate
}

func TestProposalService(t *testing.T) {
	suite.Run(t, new(ProposalServiceSuite))
}

func (s *ProposalServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewProposalService(s.params, s.dispatcher)

	ctx := s.GetContext()
	estimates := NewEstimateService(s.params, s.dispatcher)
	project := s.SeedProject(ctx, "Harbor Lofts")

	var err error
	s.estimate, err = estimates.CreateEstimate(ctx, &dto.CreateEstimateRequest{
		ProjectID:  project.ID,
		Name:       "GMP",
		AssignedTo: lo.ToPtr("user_estimator"),
	})
	s.Require().NoError(err)
	section, err := estimates.CreateSection(ctx, s.estimate.ID, &dto.CreateSectionRequest{Name: "Framing"})
	s.Require().NoError(err)
	_, err = estimates.CreateLineItem(ctx, section.ID, &dto.CreateLineItemRequest{
		Description: "Studs",
		Quantity:    decimal.NewFromInt(100),
		UnitCost:    decimal.RequireFromString("4.25"),
	})
	s.Require().NoError(err)
}

func (s *ProposalServiceSuite) create() string {
	p, err := s.service.CreateProposal(s.GetContext(), &dto.CreateProposalRequest{
		EstimateID: s.estimate.ID,
		Title:      "Harbor Lofts framing",
	})
	s.Require().NoError(err)
	return p.ID
}

func (s *ProposalServiceSuite) TestCreateSnapshotsEstimateTotal() {
	p, err := s.service.CreateProposal(s.GetContext(), &dto.CreateProposalRequest{
		EstimateID: s.estimate.ID,
		Title:      "Harbor Lofts framing",
	})
	s.Require().NoError(err)
	s.Equal("425.00", p.Amount.StringFixed(2))
	s.Equal(types.ProposalStatusDraft, p.Status)
	s.Equal(s.estimate.ProjectID, p.ProjectID)
	s.NotEmpty(p.Number)
}

func (s *ProposalServiceSuite) TestSignNotifiesEstimatorOnce() {
	ctx := s.GetContext()
	id := s.create()

	_, err := s.service.SendProposal(ctx, id)
	s.Require().NoError(err)
	_, err = s.service.MarkViewed(ctx, id)
	s.Require().NoError(err)
	s.Empty(s.GetJobs(types.JobNotifyProposalSigned))

	signed, err := s.service.SignProposal(ctx, id, &dto.SignProposalRequest{SignerName: "Dana Client"})
	s.Require().NoError(err)
	s.Equal(types.ProposalStatusSigned, signed.Status)
	s.NotNil(signed.SignedAt)
	s.Equal("Dana Client", lo.FromPtr(signed.SignerName))

	payloads := s.payloads(types.JobNotifyProposalSigned)
	s.Require().Len(payloads, 1)
	s.Equal(id, payloads[0].EntityID)
	s.Equal([]string{"user_estimator"}, payloads[0].RecipientIDs)
	s.Equal("425.00", payloads[0].Data["amount"])

	s.Equal([]string{
		"proposal.created",
		"proposal.sent",
		"proposal.viewed",
		"proposal.signed",
	}, s.actions(id))
}

func (s *ProposalServiceSuite) TestSignFromDraftIsRejected() {
	id := s.create()

	_, err := s.service.SignProposal(s.GetContext(), id, &dto.SignProposalRequest{SignerName: "Dana Client"})
	s.True(ierr.IsInvalidTransition(err))
	s.Equal(ierr.ErrCodeInvalidTransition, ierr.CodeFromErr(err))

	p, err := s.service.GetProposal(s.GetContext(), id)
	s.Require().NoError(err)
	s.Equal(types.ProposalStatusDraft, p.Status)
	s.Empty(s.GetJobs(types.JobNotifyProposalSigned))
	s.Equal([]string{"proposal.created"}, s.actions(id))
}

func (s *ProposalServiceSuite) TestMarkViewedTwiceRecordsOnce() {
	ctx := s.GetContext()
	id := s.create()

	_, err := s.service.SendProposal(ctx, id)
	s.Require().NoError(err)
	_, err = s.service.MarkViewed(ctx, id)
	s.Require().NoError(err)
	_, err = s.service.MarkViewed(ctx, id)
	s.Require().NoError(err)

	s.Equal([]string{"proposal.created", "proposal.sent", "proposal.viewed"}, s.actions(id))
}

func (s *ProposalServiceSuite) TestDeclinedIsTerminal() {
	ctx := s.GetContext()
	id := s.create()

	_, err := s.service.SendProposal(ctx, id)
	s.Require().NoError(err)
	_, err = s.service.DeclineProposal(ctx, id)
	s.Require().NoError(err)

	_, err = s.service.SignProposal(ctx, id, &dto.SignProposalRequest{SignerName: "Late"})
	s.True(ierr.IsInvalidTransition(err))
}

func (s *ProposalServiceSuite) TestListFiltersByStatus() {
	ctx := s.GetContext()
	sent := s.create()
	s.create()
	_, err := s.service.SendProposal(ctx, sent)
	s.Require().NoError(err)

	filter := types.NewDefaultQueryFilter()
	filter.Status = string(types.ProposalStatusSent)
	resp, err := s.service.ListProposals(ctx, filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(sent, resp.Items[0].ID)
	s.Equal(1, resp.Pagination.Total)
}

func (s *ProposalServiceSuite) TestSignInsideFailedUnitOfWorkNotifiesNobody() {
	ctx := s.GetContext()
	id := s.create()

	_, err := s.service.SendProposal(ctx, id)
	s.Require().NoError(err)

	err = s.GetDB().WithTx(ctx, func(ctx context.Context) error {
		_, err := s.service.SignProposal(ctx, id, &dto.SignProposalRequest{SignerName: "Dana Client"})
		s.Require().NoError(err)
		return errors.New("commit failed")
	})
	s.Require().Error(err)
	s.Empty(s.GetJobs(types.JobNotifyProposalSigned))
}
