package dto

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/domain/payroll"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
	"github.com/shopspring/decimal"
)

type CreatePayrollRunRequest struct {
	PeriodStart time.Time       `json:"period_start" validate:"required"`
	PeriodEnd   time.Time       `json:"period_end" validate:"required"`
	TotalGross  decimal.Decimal `json:"total_gross"`
}

type ListPayrollRunsResponse = types.ListResponse[*payroll.Run]

func (r *CreatePayrollRunRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.PeriodEnd.After(r.PeriodStart) {
		return ierr.NewError("period end must be after period start").
			WithHint("Pay period end must be after its start").
			Mark(ierr.ErrValidation)
	}
	return nonNegative("total_gross", &r.TotalGross)
}

func (r *CreatePayrollRunRequest) ToRun(ctx context.Context) *payroll.Run {
	return &payroll.Run{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYROLL_RUN),
		PeriodStart: r.PeriodStart.UTC(),
		PeriodEnd:   r.PeriodEnd.UTC(),
		TotalGross:  r.TotalGross,
		Status:      types.PayrollRunStatusDraft,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
