package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Storage and validation errors
var (
	ErrCaseNotFound     = goerr.New("case not found")
	ErrManagerNotFound  = goerr.New("manager not found")
	ErrCapacityExceeded = goerr.New("capacity exceeded")
	ErrManagerExists    = goerr.New("manager already exists")
	ErrDuplicateCaseID  = goerr.New("duplicate case ID")
	ErrInvalidInput     = goerr.New("invalid input")
	ErrParse            = goerr.New("failed to parse data file")

	ErrCredentialsUnavailable = goerr.New("admin credentials file not found")
)

// Context keys for error values
const (
	CaseIDKey  = "case_id"
	ManagerKey = "manager"
	LimitKey   = "limit"
	LineKey    = "line"
	LineNumKey = "line_num"
)

// ValidateText rejects text that cannot be stored on a single line
func ValidateText(field, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return goerr.Wrap(ErrInvalidInput, "text must be a single line", goerr.V("field", field))
	}
	return nil
}
