package dto

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/domain/dailylog"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateDailyLogRequest struct {
	ProjectID string    `json:"project_id" validate:"required"`
	LogDate   time.Time `json:"log_date" validate:"required"`
	Weather   string    `json:"weather" validate:"omitempty,max=100"`
	CrewCount int       `json:"crew_count" validate:"min=0"`
	Notes     string    `json:"notes"`
}

type ListDailyLogsResponse = types.ListResponse[*dailylog.DailyLog]

func (r *CreateDailyLogRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateDailyLogRequest) ToDailyLog(ctx context.Context) *dailylog.DailyLog {
	return &dailylog.DailyLog{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DAILY_LOG),
		ProjectID: r.ProjectID,
		LogDate:   r.LogDate.UTC(),
		Weather:   r.Weather,
		CrewCount: r.CrewCount,
		Notes:     r.Notes,
		Status:    types.DailyLogStatusDraft,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
