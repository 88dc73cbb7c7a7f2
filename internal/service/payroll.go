package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/payroll"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type PayrollRunService interface {
	CreateRun(ctx context.Context, req *dto.CreatePayrollRunRequest) (*payroll.Run, error)
	GetRun(ctx context.Context, id string) (*payroll.Run, error)
	ListRuns(ctx context.Context, filter *types.QueryFilter) (*dto.ListPayrollRunsResponse, error)
	ProcessRun(ctx context.Context, id string) (*payroll.Run, error)
	ApproveRun(ctx context.Context, id string) (*payroll.Run, error)
	MarkRunPaid(ctx context.Context, id string) (*payroll.Run, error)
	CancelRun(ctx context.Context, id string) (*payroll.Run, error)
}

type payrollRunService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[payroll.Run, *payroll.Run]
}

func NewPayrollRunService(params ServiceParams, dispatcher *Dispatcher) PayrollRunService {
	s := &payrollRunService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[payroll.Run](params, types.EntityTypePayrollRun, params.PayrollRunRepo, s)
	return s
}

func (s *payrollRunService) CreateRun(ctx context.Context, req *dto.CreatePayrollRunRequest) (*payroll.Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.ToRun(ctx)
	if err := s.store.create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *payrollRunService) GetRun(ctx context.Context, id string) (*payroll.Run, error) {
	return s.store.get(ctx, id)
}

func (s *payrollRunService) ListRuns(ctx context.Context, filter *types.QueryFilter) (*dto.ListPayrollRunsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *payrollRunService) ProcessRun(ctx context.Context, id string) (*payroll.Run, error) {
	return s.move(ctx, id, types.PayrollRunStatusProcessing, nil)
}

func (s *payrollRunService) ApproveRun(ctx context.Context, id string) (*payroll.Run, error) {
	return s.move(ctx, id, types.PayrollRunStatusApproved, func(ctx context.Context, r *payroll.Run) {
		r.ApprovedBy = lo.ToPtr(types.GetUserID(ctx))
	})
}

func (s *payrollRunService) MarkRunPaid(ctx context.Context, id string) (*payroll.Run, error) {
	return s.move(ctx, id, types.PayrollRunStatusPaid, func(_ context.Context, r *payroll.Run) {
		r.PaidAt = lo.ToPtr(time.Now().UTC())
	})
}

func (s *payrollRunService) CancelRun(ctx context.Context, id string) (*payroll.Run, error) {
	return s.move(ctx, id, types.PayrollRunStatusCanceled, nil)
}

func (s *payrollRunService) move(ctx context.Context, id string, to types.PayrollRunStatus, apply func(ctx context.Context, r *payroll.Run)) (*payroll.Run, error) {
	return s.store.update(ctx, id, func(ctx context.Context, r *payroll.Run) error {
		if err := moveTo(types.EntityTypePayrollRun, types.PayrollRunWorkflow, &r.Status, to); err != nil {
			return err
		}
		if apply != nil {
			apply(ctx, r)
		}
		return nil
	})
}

func (s *payrollRunService) OnTransition(ctx context.Context, r *payroll.Run, t tracker.Transition) {
	description := ""
	if !t.Created {
		description = "Payroll run " + r.PeriodStart.Format("2006-01-02") + " to " + r.PeriodEnd.Format("2006-01-02") + " moved to " + t.NewState
	}
	s.dispatcher.RecordTransition(ctx, t, "", types.ActivitySeverityInfo, description)
}
