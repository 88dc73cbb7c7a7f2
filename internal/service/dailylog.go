package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/dailylog"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type DailyLogService interface {
	CreateDailyLog(ctx context.Context, req *dto.CreateDailyLogRequest) (*dailylog.DailyLog, error)
	GetDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error)
	ListDailyLogs(ctx context.Context, filter *types.QueryFilter) (*dto.ListDailyLogsResponse, error)
	SubmitDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error)
	ApproveDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error)
	RejectDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error)
}

type dailyLogService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[dailylog.DailyLog, *dailylog.DailyLog]
}

func NewDailyLogService(params ServiceParams, dispatcher *Dispatcher) DailyLogService {
	s := &dailyLogService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[dailylog.DailyLog](params, types.EntityTypeDailyLog, params.DailyLogRepo, s)
	return s
}

func (s *dailyLogService) CreateDailyLog(ctx context.Context, req *dto.CreateDailyLogRequest) (*dailylog.DailyLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	l := req.ToDailyLog(ctx)
	if err := s.store.create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *dailyLogService) GetDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error) {
	return s.store.get(ctx, id)
}

func (s *dailyLogService) ListDailyLogs(ctx context.Context, filter *types.QueryFilter) (*dto.ListDailyLogsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *dailyLogService) SubmitDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error) {
	return s.store.update(ctx, id, func(ctx context.Context, l *dailylog.DailyLog) error {
		return moveTo(types.EntityTypeDailyLog, types.DailyLogWorkflow, &l.Status, types.DailyLogStatusSubmitted)
	})
}

func (s *dailyLogService) ApproveDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error) {
	return s.review(ctx, id, types.DailyLogStatusApproved)
}

func (s *dailyLogService) RejectDailyLog(ctx context.Context, id string) (*dailylog.DailyLog, error) {
	return s.review(ctx, id, types.DailyLogStatusRejected)
}

func (s *dailyLogService) review(ctx context.Context, id string, to types.DailyLogStatus) (*dailylog.DailyLog, error) {
	return s.store.update(ctx, id, func(ctx context.Context, l *dailylog.DailyLog) error {
		if err := moveTo(types.EntityTypeDailyLog, types.DailyLogWorkflow, &l.Status, to); err != nil {
			return err
		}
		l.ReviewedBy = lo.ToPtr(types.GetUserID(ctx))
		return nil
	})
}

// OnTransition asks the project manager to review a submitted log
func (s *dailyLogService) OnTransition(ctx context.Context, l *dailylog.DailyLog, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, l.ProjectID, types.ActivitySeverityInfo, "")

	if t.Created || t.NewState != string(types.DailyLogStatusSubmitted) {
		return
	}

	payload := jobs.Payload{
		EntityID:  l.ID,
		ProjectID: l.ProjectID,
		Subject:   "Daily log for " + l.LogDate.Format("2006-01-02") + " submitted",
		Data: map[string]interface{}{
			"daily_log_id": l.ID,
			"log_date":     l.LogDate.Format("2006-01-02"),
		},
	}
	if p, err := s.ProjectRepo.Get(ctx, l.ProjectID); err == nil && p.ManagerID != nil {
		payload.RecipientIDs = []string{*p.ManagerID}
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifyDailyLogSubmitted, payload)
}
