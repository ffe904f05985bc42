package usecase

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model/auth"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

// Operation names an action a principal can request
type Operation string

const (
	OpAddCase        Operation = "add_case"
	OpListCases      Operation = "list_cases"
	OpViewCase       Operation = "view_case"
	OpAssignManager  Operation = "assign_manager"
	OpEditCase       Operation = "edit_case"
	OpDeleteCase     Operation = "delete_case"
	OpAppendAction   Operation = "append_action"
	OpExportCase     Operation = "export_case"
	OpCloseCase      Operation = "close_case"
	OpAddManager     Operation = "add_manager"
	OpListManagers   Operation = "list_managers"
	OpEditManager    Operation = "edit_manager"
	OpToggleManager  Operation = "toggle_manager"
	OpDeleteManager  Operation = "delete_manager"
	OpGenerateReport Operation = "generate_report"
	OpAddAdmin       Operation = "add_admin"
)

// String returns the operation name
func (o Operation) String() string {
	return string(o)
}

var (
	adminOperations = []Operation{
		OpAddCase,
		OpListCases,
		OpViewCase,
		OpAssignManager,
		OpEditCase,
		OpDeleteCase,
		OpAppendAction,
		OpExportCase,
		OpCloseCase,
		OpAddManager,
		OpListManagers,
		OpEditManager,
		OpToggleManager,
		OpDeleteManager,
		OpGenerateReport,
		OpAddAdmin,
	}

	managerOperations = []Operation{
		OpListCases,
		OpViewCase,
		OpAppendAction,
		OpExportCase,
		OpCloseCase,
		OpGenerateReport,
	}
)

// AllowedOperations returns the operations open to role, in menu order.
// Unknown roles get none.
func AllowedOperations(role types.Role) []Operation {
	switch role {
	case types.RoleAdmin:
		return slices.Clone(adminOperations)
	case types.RoleManager:
		return slices.Clone(managerOperations)
	default:
		return nil
	}
}

// IsAllowed reports whether role may request op
func IsAllowed(role types.Role, op Operation) bool {
	return slices.Contains(AllowedOperations(role), op)
}

func authorize(p *auth.Principal, op Operation) error {
	if !IsAllowed(p.Role, op) {
		return goerr.Wrap(ErrPermissionDenied, "operation not allowed for role",
			goerr.V(OperationKey, op.String()),
			goerr.V(RoleKey, p.Role.String()),
			goerr.V(ManagerKey, p.Name))
	}
	return nil
}
