package proposal

import (
	"time"

	"github.com/buildline/buildline/internal/types"
	"github.com/shopspring/decimal"
)

type Proposal struct {
	ID         string               `db:"id" json:"id"`
	EstimateID string               `db:"estimate_id" json:"estimate_id"`
	ProjectID  string               `db:"project_id" json:"project_id"`
	Number     string               `db:"number" json:"number"`
	Title      string               `db:"title" json:"title"`
	Amount     decimal.Decimal      `db:"amount" json:"amount"`
	SentAt     *time.Time           `db:"sent_at" json:"sent_at,omitempty"`
	ViewedAt   *time.Time           `db:"viewed_at" json:"viewed_at,omitempty"`
	SignedAt   *time.Time           `db:"signed_at" json:"signed_at,omitempty"`
	SignerName *string              `db:"signer_name" json:"signer_name,omitempty"`
	Status     types.ProposalStatus `db:"status" json:"status"`
	types.BaseModel
}

func (p *Proposal) GetID() string        { return p.ID }
func (p *Proposal) GetProjectID() string { return p.ProjectID }
func (p *Proposal) TrackingID() string   { return p.ID }
func (p *Proposal) TrackedState() string { return string(p.Status) }
