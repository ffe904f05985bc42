package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

// ValidationIssue represents a single consistency problem found in the store
type ValidationIssue struct {
	CaseID   int64
	Manager  string
	Message  string
	Expected string
	Actual   string
}

// ValidationResult holds the results of a consistency check
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateState checks the loaded records for problems the data file format
// allows but the operations never produce, such as assignments to managers
// that do not exist. It does NOT modify any data.
func (uc *UseCases) ValidateState(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	managers, err := uc.repo.Manager().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list managers")
	}
	known := make(map[string]struct{}, len(managers))
	for _, m := range managers {
		known[m.Name] = struct{}{}
		if m.Password == "" {
			result.AddIssue(ValidationIssue{
				Manager: m.Name,
				Message: "manager has no password and can never log in",
			})
		}
	}

	cases, err := uc.repo.Case().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	limits := uc.repo.Limits()
	for _, c := range cases {
		if c.Title == "" {
			result.AddIssue(ValidationIssue{CaseID: c.ID, Message: "case has no title"})
		}

		for _, name := range c.AssignedManagers {
			if _, ok := known[name]; !ok {
				result.AddIssue(ValidationIssue{
					CaseID:  c.ID,
					Manager: name,
					Message: "case is assigned to an unknown manager",
				})
			}
		}

		if c.Status != types.CaseStatusOpen && c.Status != types.CaseStatusClosed && len(c.AssignedManagers) == 0 {
			result.AddIssue(ValidationIssue{
				CaseID:   c.ID,
				Message:  "case status requires an assigned manager",
				Expected: "at least one assigned manager",
				Actual:   c.Status.String(),
			})
		}

		if len(c.Actions) > limits.MaxActions {
			result.AddIssue(ValidationIssue{
				CaseID:   c.ID,
				Message:  "case has more actions than allowed",
				Expected: fmt.Sprintf("<= %d", limits.MaxActions),
				Actual:   fmt.Sprint(len(c.Actions)),
			})
		}

		for i, action := range c.Actions {
			stamp := action.Date + " " + action.Time
			if _, err := time.Parse(model.DateLayout+" "+model.TimeLayout, stamp); err != nil {
				result.AddIssue(ValidationIssue{
					CaseID:   c.ID,
					Manager:  action.Manager,
					Message:  fmt.Sprintf("action #%d has a malformed timestamp", i+1),
					Expected: model.DateLayout + " " + model.TimeLayout,
					Actual:   stamp,
				})
			}
		}
	}

	return result, nil
}
