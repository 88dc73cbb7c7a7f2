package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/serviceticket"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateServiceTicketRequest struct {
	ProjectID    *string `json:"project_id,omitempty"`
	CustomerName string  `json:"customer_name" validate:"required,max=255"`
	Description  string  `json:"description" validate:"required"`
	Priority     string  `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

type AssignServiceTicketRequest struct {
	AssigneeID string `json:"assignee_id" validate:"required"`
}

type ListServiceTicketsResponse = types.ListResponse[*serviceticket.ServiceTicket]

func (r *CreateServiceTicketRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateServiceTicketRequest) ToServiceTicket(ctx context.Context) *serviceticket.ServiceTicket {
	priority := r.Priority
	if priority == "" {
		priority = "normal"
	}
	return &serviceticket.ServiceTicket{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SERVICE_TICKET),
		Number:       types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_SERVICE_TICKET),
		ProjectID:    r.ProjectID,
		CustomerName: r.CustomerName,
		Description:  r.Description,
		Priority:     priority,
		Status:       types.ServiceTicketStatusNew,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

func (r *AssignServiceTicketRequest) Validate() error {
	return validator.ValidateRequest(r)
}
