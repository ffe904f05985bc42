package types

import "fmt"

// CaseStatus represents the lifecycle status of a case. The string values are
// written verbatim to the data file.
type CaseStatus string

const (
	CaseStatusOpen       CaseStatus = "Open"
	CaseStatusAssigned   CaseStatus = "Assigned"
	CaseStatusInProgress CaseStatus = "In Progress"
	CaseStatusExported   CaseStatus = "Exported"
	CaseStatusClosed     CaseStatus = "Closed"
)

// AllCaseStatuses returns all valid case statuses in lifecycle order
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusOpen,
		CaseStatusAssigned,
		CaseStatusInProgress,
		CaseStatusExported,
		CaseStatusClosed,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusOpen,
		CaseStatusAssigned,
		CaseStatusInProgress,
		CaseStatusExported,
		CaseStatusClosed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusClosed
}

// Normalize returns the status, treating empty as CaseStatusOpen.
func (s CaseStatus) Normalize() CaseStatus {
	if s == "" {
		return CaseStatusOpen
	}
	return s
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
