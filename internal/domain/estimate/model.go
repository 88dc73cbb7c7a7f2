package estimate

import (
	"github.com/buildline/buildline/internal/types"
	"github.com/shopspring/decimal"
)

// Estimate aggregates its sections. Subtotal, MarkupAmount and Total are
// derived and only ever written by recalculation.
type Estimate struct {
	ID            string               `db:"id" json:"id"`
	ProjectID     string               `db:"project_id" json:"project_id"`
	Name          string               `db:"name" json:"name"`
	AssignedTo    *string              `db:"assigned_to" json:"assigned_to,omitempty"`
	MarkupPercent decimal.Decimal      `db:"markup_percent" json:"markup_percent"`
	Subtotal      decimal.Decimal      `db:"subtotal" json:"subtotal"`
	MarkupAmount  decimal.Decimal      `db:"markup_amount" json:"markup_amount"`
	Total         decimal.Decimal      `db:"total" json:"total"`
	Status        types.EstimateStatus `db:"status" json:"status"`
	types.BaseModel
}

func (e *Estimate) GetID() string        { return e.ID }
func (e *Estimate) GetProjectID() string { return e.ProjectID }
func (e *Estimate) TrackingID() string   { return e.ID }
func (e *Estimate) TrackedState() string { return string(e.Status) }

// Section groups line items; Total and ItemCount are derived
type Section struct {
	ID         string          `db:"id" json:"id"`
	EstimateID string          `db:"estimate_id" json:"estimate_id"`
	Name       string          `db:"name" json:"name"`
	SortOrder  int             `db:"sort_order" json:"sort_order"`
	Total      decimal.Decimal `db:"total" json:"total"`
	ItemCount  int             `db:"item_count" json:"item_count"`
	types.BaseModel
}

func (s *Section) GetID() string { return s.ID }

type LineItem struct {
	ID          string          `db:"id" json:"id"`
	EstimateID  string          `db:"estimate_id" json:"estimate_id"`
	SectionID   string          `db:"section_id" json:"section_id"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	Unit        string          `db:"unit" json:"unit"`
	UnitCost    decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	Total       decimal.Decimal `db:"total" json:"total"`
	types.BaseModel
}

func (l *LineItem) GetID() string { return l.ID }

// ComputeTotal sets Total from quantity and unit cost, rounded to cents
func (l *LineItem) ComputeTotal() {
	l.Total = l.Quantity.Mul(l.UnitCost).Round(2)
}
