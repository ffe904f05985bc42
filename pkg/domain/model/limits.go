package model

import "github.com/m-mizutani/goerr/v2"

// Default capacity limits
const (
	DefaultMaxCases            = 100
	DefaultMaxManagers         = 20
	DefaultMaxAssignedManagers = 5
	DefaultMaxActions          = 50

	// FirstCaseID is the id given to the first case of an empty store
	FirstCaseID int64 = 1000
)

// Limits holds the capacity policy enforced by the store and use cases
type Limits struct {
	MaxCases            int
	MaxManagers         int
	MaxAssignedManagers int
	MaxActions          int
}

// DefaultLimits returns the standard capacity policy
func DefaultLimits() Limits {
	return Limits{
		MaxCases:            DefaultMaxCases,
		MaxManagers:         DefaultMaxManagers,
		MaxAssignedManagers: DefaultMaxAssignedManagers,
		MaxActions:          DefaultMaxActions,
	}
}

// Validate checks that every limit is positive
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"max_cases", l.MaxCases},
		{"max_managers", l.MaxManagers},
		{"max_assigned_managers", l.MaxAssignedManagers},
		{"max_actions", l.MaxActions},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return goerr.Wrap(ErrInvalidInput, "limit must be positive",
				goerr.V("limit", c.name),
				goerr.V("value", c.value))
		}
	}
	return nil
}
