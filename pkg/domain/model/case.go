package model

import (
	"slices"
	"time"

	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

// Case represents an investigative case tracked by the system
type Case struct {
	ID               int64
	Title            string
	Description      string
	Source           string
	Status           types.CaseStatus
	AssignedManagers []string // Manager names, in assignment order
	Actions          []Action // Chronological, append-only
	CreatedAt        time.Time
}

// IsAssigned reports whether the named manager is in the assignment list.
func (c *Case) IsAssigned(name string) bool {
	return slices.Contains(c.AssignedManagers, name)
}

// Copy returns a deep copy of the case
func (c *Case) Copy() *Case {
	copied := *c
	copied.AssignedManagers = slices.Clone(c.AssignedManagers)
	copied.Actions = slices.Clone(c.Actions)
	return &copied
}

// IsCaseAccessible reports whether a principal with the given name and role
// may see the case. Admins see every case; managers only their assignments.
func IsCaseAccessible(c *Case, name string, role types.Role) bool {
	if role == types.RoleAdmin {
		return true
	}
	return c.IsAssigned(name)
}
