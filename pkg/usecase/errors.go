package usecase

import (
	"errors"

	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCaseNotFound    = model.ErrCaseNotFound
	ErrManagerNotFound = model.ErrManagerNotFound

	// Capacity
	ErrCapacityExceeded = model.ErrCapacityExceeded

	// Access control errors
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrCredentialsUnavailable = model.ErrCredentialsUnavailable

	// Status errors
	ErrAlreadyAssigned   = errors.New("manager is already assigned to the case")
	ErrCaseAlreadyClosed = errors.New("case is already closed")
	ErrManagerExists     = model.ErrManagerExists
	ErrAdminExists       = errors.New("admin already exists")

	// Referential integrity
	ErrManagerInUse = errors.New("manager is assigned to a case")

	// Validation errors
	ErrInvalidInput    = model.ErrInvalidInput
	ErrManagerInactive = errors.New("manager is inactive")
	ErrNoCases         = errors.New("no cases to report")
)

// Context keys for error values
const (
	CaseIDKey    = model.CaseIDKey
	ManagerKey   = model.ManagerKey
	UsernameKey  = "username"
	OperationKey = "operation"
	RoleKey      = "role"
)
