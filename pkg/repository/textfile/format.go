// Package textfile persists the record store as a line-oriented, human
// readable text file with MANAGERS, CASES and SYSTEM sections.
package textfile

// Section markers
const (
	markerManagers = "=== MANAGERS ==="
	markerCases    = "=== CASES ==="
	markerSystem   = "=== SYSTEM ==="
)

// Record headers and field prefixes
const (
	prefixManagerHeader = "Manager "
	prefixName          = "  Name: "
	prefixDepartment    = "  Department: "
	prefixPassword      = "  Password: "
	prefixStatus        = "  Status: "

	prefixCaseID      = "Case ID: "
	prefixTitle       = "  Title: "
	prefixDescription = "  Description: "
	prefixCreated     = "  Created: "
	prefixSource      = "  Source: "
	prefixAssigned    = "  Assigned Managers ("
	prefixActions     = "  Actions ("
	prefixListItem    = "    - "

	prefixNextCaseID = "Next Case ID: "

	createdSeparator = " at "
	actionBy         = " by "
	actionColon      = ": "

	statusActive   = "Active"
	statusInactive = "Inactive"
)
