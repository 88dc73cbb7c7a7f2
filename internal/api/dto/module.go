package dto

import (
	"github.com/buildline/buildline/internal/types"
)

type ModuleResponse struct {
	Key          types.ModuleKey `json:"key"`
	Active       bool            `json:"active"`
	AlwaysActive bool            `json:"always_active"`
}

type ListModulesResponse struct {
	Items []*ModuleResponse `json:"items"`
}
