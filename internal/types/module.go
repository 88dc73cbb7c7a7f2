package types

import (
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/samber/lo"
)

// ModuleKey identifies an activatable business module
type ModuleKey string

const (
	ModuleProjects   ModuleKey = "projects"
	ModuleDocuments  ModuleKey = "documents"
	ModuleCRM        ModuleKey = "crm"
	ModuleEstimating ModuleKey = "estimating"
	ModuleScheduling ModuleKey = "scheduling"
	ModuleFieldOps   ModuleKey = "field_ops"
	ModulePayroll    ModuleKey = "payroll"
	ModuleService    ModuleKey = "service"
	ModuleAnalytics  ModuleKey = "analytics"
	ModulePortal     ModuleKey = "portal"
)

// AlwaysActiveModules are accessible to every organization regardless of stored activation rows
var AlwaysActiveModules = []ModuleKey{
	ModuleProjects,
	ModuleDocuments,
}

// Modules lists every known module key
var Modules = []ModuleKey{
	ModuleProjects,
	ModuleDocuments,
	ModuleCRM,
	ModuleEstimating,
	ModuleScheduling,
	ModuleFieldOps,
	ModulePayroll,
	ModuleService,
	ModuleAnalytics,
	ModulePortal,
}

func (k ModuleKey) String() string {
	return string(k)
}

func (k ModuleKey) IsAlwaysActive() bool {
	return lo.Contains(AlwaysActiveModules, k)
}

func (k ModuleKey) Validate() error {
	if !lo.Contains(Modules, k) {
		return ierr.NewError("invalid module key").
			WithHint("Unknown module").
			WithReportableDetails(map[string]any{
				"module":          k,
				"allowed_modules": Modules,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
