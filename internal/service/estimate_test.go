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

type EstimateServiceSuite struct {
	ServiceSuite
	service  EstimateService
	estimate *estimate.Estimate
	section  *estimate.Section
}

func TestEstimateService(t *testing.T) {
	suite.Run(t, new(EstimateServiceSuite))
}

func (s *EstimateServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewEstimateService(s.params, s.dispatcher)

	ctx := s.GetContext()
	project := s.SeedProject(ctx, "Riverside Clinic")

	var err error
	s.estimate, err = s.service.CreateEstimate(ctx, &dto.CreateEstimateRequest{
		ProjectID:  project.ID,
		Name:       "Base bid",
		AssignedTo: lo.ToPtr("user_estimator"),
	})
	s.Require().NoError(err)

	s.section, err = s.service.CreateSection(ctx, s.estimate.ID, &dto.CreateSectionRequest{Name: "Sitework"})
	s.Require().NoError(err)
}

func (s *EstimateServiceSuite) addItem(qty, cost string) *estimate.LineItem {
	item, err := s.service.CreateLineItem(s.GetContext(), s.section.ID, &dto.CreateLineItemRequest{
		Description: "Excavation",
		Quantity:    decimal.RequireFromString(qty),
		Unit:        "cy",
		UnitCost:    decimal.RequireFromString(cost),
	})
	s.Require().NoError(err)
	return item
}

func (s *EstimateServiceSuite) assertTotals(sectionTotal, estimateTotal string) {
	ctx := s.GetContext()

	section, err := s.GetStores().SectionRepo.Get(ctx, s.section.ID)
	s.Require().NoError(err)
	s.Equal(decimal.RequireFromString(sectionTotal).StringFixed(2), section.Total.StringFixed(2), "section total")

	e, err := s.service.GetEstimate(ctx, s.estimate.ID)
	s.Require().NoError(err)
	s.Equal(decimal.RequireFromString(estimateTotal).StringFixed(2), e.Total.StringFixed(2), "estimate total")
}

func (s *EstimateServiceSuite) TestCreateEstimateStartsAtZero() {
	s.Equal(types.EstimateStatusDraft, s.estimate.Status)
	s.True(s.estimate.Total.IsZero())
	s.Equal([]string{"estimate.created"}, s.actions(s.estimate.ID))
}

func (s *EstimateServiceSuite) TestCreateEstimateUnknownProject() {
	_, err := s.service.CreateEstimate(s.GetContext(), &dto.CreateEstimateRequest{
		ProjectID: "proj_missing",
		Name:      "Orphan",
	})
	s.True(ierr.IsNotFound(err))
}

func (s *EstimateServiceSuite) TestLineItemCascade() {
	item := s.addItem("10", "20")
	s.Equal("200.00", item.Total.StringFixed(2))
	s.assertTotals("200", "200")

	section, err := s.GetStores().SectionRepo.Get(s.GetContext(), s.section.ID)
	s.Require().NoError(err)
	s.Equal(1, section.ItemCount)

	s.Require().NoError(s.service.DeleteLineItem(s.GetContext(), item.ID))
	s.assertTotals("0", "0")
}

func (s *EstimateServiceSuite) TestUpdateLineItemRecomputes() {
	item := s.addItem("10", "20")
	s.addItem("1", "50.50")
	s.assertTotals("250.50", "250.50")

	updated, err := s.service.UpdateLineItem(s.GetContext(), item.ID, &dto.UpdateLineItemRequest{
		Quantity: lo.ToPtr(decimal.NewFromInt(3)),
	})
	s.Require().NoError(err)
	s.Equal("60.00", updated.Total.StringFixed(2))
	s.assertTotals("110.50", "110.50")
}

func (s *EstimateServiceSuite) TestMarkupChangeRecalculatesEstimate() {
	s.addItem("4", "25")

	e, err := s.service.UpdateEstimate(s.GetContext(), s.estimate.ID, &dto.UpdateEstimateRequest{
		MarkupPercent: lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.Require().NoError(err)
	s.Equal("100.00", e.Subtotal.StringFixed(2))
	s.Equal("10.00", e.MarkupAmount.StringFixed(2))
	s.Equal("110.00", e.Total.StringFixed(2))
}

func (s *EstimateServiceSuite) TestDeleteSectionRemovesItems() {
	item := s.addItem("2", "10")
	other, err := s.service.CreateSection(s.GetContext(), s.estimate.ID, &dto.CreateSectionRequest{Name: "Concrete", SortOrder: 1})
	s.Require().NoError(err)
	_, err = s.service.CreateLineItem(s.GetContext(), other.ID, &dto.CreateLineItemRequest{
		Description: "Footings",
		Quantity:    decimal.NewFromInt(1),
		UnitCost:    decimal.NewFromInt(5),
	})
	s.Require().NoError(err)

	e, err := s.service.GetEstimate(s.GetContext(), s.estimate.ID)
	s.Require().NoError(err)
	s.Equal("25.00", e.Total.StringFixed(2))

	s.Require().NoError(s.service.DeleteSection(s.GetContext(), s.section.ID))

	_, err = s.GetStores().LineItemRepo.Get(s.GetContext(), item.ID)
	s.True(ierr.IsNotFound(err))

	e, err = s.service.GetEstimate(s.GetContext(), s.estimate.ID)
	s.Require().NoError(err)
	s.Equal("5.00", e.Total.StringFixed(2))
}

func (s *EstimateServiceSuite) TestRejectsNegativeQuantity() {
	_, err := s.service.CreateLineItem(s.GetContext(), s.section.ID, &dto.CreateLineItemRequest{
		Description: "Credit",
		Quantity:    decimal.NewFromInt(-1),
		UnitCost:    decimal.NewFromInt(5),
	})
	s.True(ierr.IsValidation(err))
}

func (s *EstimateServiceSuite) TestFailedRecalculationKeepsChildWrite() {
	// the section update fails on every attempt, the line item must still be stored
	stores := s.GetStores()
	failing := &failingSectionRepo{SectionRepository: stores.SectionRepo}
	s.params.SectionRepo = failing
	svc := NewEstimateService(s.params, s.dispatcher)

	item, err := svc.CreateLineItem(s.GetContext(), s.section.ID, &dto.CreateLineItemRequest{
		Description: "Fill",
		Quantity:    decimal.NewFromInt(1),
		UnitCost:    decimal.NewFromInt(10),
	})
	s.Require().NoError(err)

	_, err = stores.LineItemRepo.Get(s.GetContext(), item.ID)
	s.NoError(err)
	s.Greater(failing.attempts, 1)
}

func (s *EstimateServiceSuite) TestStatusWorkflow() {
	ctx := s.GetContext()

	_, err := s.service.UpdateEstimate(ctx, s.estimate.ID, &dto.UpdateEstimateRequest{
		Status: lo.ToPtr(types.EstimateStatusAccepted),
	})
	s.True(ierr.IsInvalidTransition(err))

	e, err := s.service.UpdateEstimate(ctx, s.estimate.ID, &dto.UpdateEstimateRequest{
		Status: lo.ToPtr(types.EstimateStatusSent),
	})
	s.Require().NoError(err)
	s.Equal(types.EstimateStatusSent, e.Status)
	s.Equal([]string{"estimate.created", "estimate.sent"}, s.actions(s.estimate.ID))
}

func (s *EstimateServiceSuite) TestRenameDoesNotRecordTransition() {
	_, err := s.service.UpdateEstimate(s.GetContext(), s.estimate.ID, &dto.UpdateEstimateRequest{
		Name: lo.ToPtr("Alternate 1"),
	})
	s.Require().NoError(err)
	s.Equal([]string{"estimate.created"}, s.actions(s.estimate.ID))
}

func (s *EstimateServiceSuite) TestForeignOrganizationCannotSeeEstimate() {
	s.SeedOrganization("org_other", "user_other", types.SubscriptionStatusActive)
	other := s.SeedMember("org_other", "user_other_pm", types.RoleProjectManager)

	_, err := s.service.GetEstimate(other, s.estimate.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.CreateSection(other, s.estimate.ID, &dto.CreateSectionRequest{Name: "Intrusion"})
	s.True(ierr.IsNotFound(err))
}

type failingSectionRepo struct {
	estimate.SectionRepository
	attempts int
}

func (r *failingSectionRepo) Update(ctx context.Context, section *estimate.Section) error {
	r.attempts++
	return errors.New("connection reset")
}
