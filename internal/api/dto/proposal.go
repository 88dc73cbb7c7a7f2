package dto

import (
	"github.com/buildline/buildline/internal/domain/proposal"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateProposalRequest struct {
	EstimateID string `json:"estimate_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=255"`
}

type SignProposalRequest struct {
	SignerName string `json:"signer_name" validate:"required,max=255"`
}

type ListProposalsResponse = types.ListResponse[*proposal.Proposal]

func (r *CreateProposalRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *SignProposalRequest) Validate() error {
	return validator.ValidateRequest(r)
}
