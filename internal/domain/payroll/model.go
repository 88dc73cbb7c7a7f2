package payroll

import (
	"time"

	"github.com/buildline/buildline/internal/types"
	"github.com/shopspring/decimal"
)

// Run is one pay period's payroll for the organization
type Run struct {
	ID          string                 `db:"id" json:"id"`
	PeriodStart time.Time              `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time              `db:"period_end" json:"period_end"`
	TotalGross  decimal.Decimal        `db:"total_gross" json:"total_gross"`
	ApprovedBy  *string                `db:"approved_by" json:"approved_by,omitempty"`
	PaidAt      *time.Time             `db:"paid_at" json:"paid_at,omitempty"`
	Status      types.PayrollRunStatus `db:"status" json:"status"`
	types.BaseModel
}

func (r *Run) GetID() string        { return r.ID }
func (r *Run) TrackingID() string   { return r.ID }
func (r *Run) TrackedState() string { return string(r.Status) }
