package dto

import (
	"github.com/buildline/buildline/internal/validator"
)

// SignUpRequest creates a user together with their first organization
type SignUpRequest struct {
	Email            string `json:"email" binding:"required,email" validate:"required,email"`
	Password         string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	Name             string `json:"name" validate:"omitempty,max=255"`
	OrganizationName string `json:"organization_name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
	// OrganizationID is an optional hint for the organization to open
	OrganizationID string `json:"organization_id" validate:"omitempty"`
}

type AuthResponse struct {
	Token          string `json:"token"`
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id,omitempty"`
}

func (r *SignUpRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}
