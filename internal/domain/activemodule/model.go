package activemodule

import (
	"github.com/buildline/buildline/internal/types"
)

// ActiveModule records whether an organization has a gated module switched on
type ActiveModule struct {
	ID        string          `db:"id" json:"id"`
	ModuleKey types.ModuleKey `db:"module_key" json:"module_key"`
	Active    bool            `db:"active" json:"active"`
	types.BaseModel
}

func (m *ActiveModule) GetID() string { return m.ID }
