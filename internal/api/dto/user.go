package dto

import (
	"github.com/buildline/buildline/internal/domain/user"
)

type UserResponse struct {
	*user.User
	Organizations []*OrganizationResponse `json:"organizations"`
}
