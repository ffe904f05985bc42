package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
	"github.com/secmon-lab/casekeeper/pkg/utils/clock"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

// DefaultExportReason is recorded when a case is exported without a reason
const DefaultExportReason = "No reason provided"

type CaseUseCase struct {
	repo interfaces.Repository
}

func NewCaseUseCase(repo interfaces.Repository) *CaseUseCase {
	return &CaseUseCase{repo: repo}
}

// CaseEdit holds replacement values for EditCase. Empty fields keep the
// current value.
type CaseEdit struct {
	Title       string
	Description string
	Source      string
}

func (uc *CaseUseCase) CreateCase(ctx context.Context, title, description, source string) (*model.Case, error) {
	p, err := principal(ctx, OpAddCase)
	if err != nil {
		return nil, err
	}

	if title == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "case title is required")
	}
	for field, value := range map[string]string{"title": title, "description": description, "source": source} {
		if err := model.ValidateText(field, value); err != nil {
			return nil, err
		}
	}

	created, err := uc.repo.Case().Create(ctx, &model.Case{
		Title:       title,
		Description: description,
		Source:      source,
		Status:      types.CaseStatusOpen,
		CreatedAt:   clock.Now(ctx),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}

	logging.From(ctx).Info("case created", "case_id", created.ID, "by", p.Name)
	return created, nil
}

// ListCases returns the cases visible to the caller in creation order
func (uc *CaseUseCase) ListCases(ctx context.Context) ([]*model.Case, error) {
	p, err := principal(ctx, OpListCases)
	if err != nil {
		return nil, err
	}

	if p.IsManager() {
		cases, err := uc.repo.Case().ListByManager(ctx, p.Name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list cases", goerr.V(ManagerKey, p.Name))
		}
		return cases, nil
	}

	cases, err := uc.repo.Case().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

func (uc *CaseUseCase) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	p, err := principal(ctx, OpViewCase)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if err := requireAccess(p, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AssignManager adds an active manager to the case. An Open case becomes
// Assigned.
func (uc *CaseUseCase) AssignManager(ctx context.Context, id int64, name string) (*model.Case, error) {
	p, err := principal(ctx, OpAssignManager)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if err := uc.checkAssignable(ctx, c, name); err != nil {
		return nil, err
	}

	c.AssignedManagers = append(c.AssignedManagers, name)
	if c.Status == types.CaseStatusOpen {
		c.Status = types.CaseStatusAssigned
	}

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("manager assigned", "case_id", id, "manager", name, "by", p.Name)
	return updated, nil
}

// checkAssignable verifies name can join the assignment list of c
func (uc *CaseUseCase) checkAssignable(ctx context.Context, c *model.Case, name string) error {
	m, err := uc.repo.Manager().Get(ctx, name)
	if err != nil {
		return goerr.Wrap(err, "failed to get manager", goerr.V(CaseIDKey, c.ID))
	}
	if !m.Active {
		return goerr.Wrap(ErrManagerInactive, "inactive managers cannot be assigned",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(ManagerKey, name))
	}
	if c.IsAssigned(name) {
		return goerr.Wrap(ErrAlreadyAssigned, "manager is already assigned",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(ManagerKey, name))
	}
	if limit := uc.repo.Limits().MaxAssignedManagers; len(c.AssignedManagers) >= limit {
		return goerr.Wrap(ErrCapacityExceeded, "assignment list is full",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(model.LimitKey, limit))
	}
	return nil
}

// AppendAction records an action by the caller. An Assigned case moves to In
// Progress; other statuses, Closed included, are left alone.
func (uc *CaseUseCase) AppendAction(ctx context.Context, id int64, description string) (*model.Case, error) {
	p, err := principal(ctx, OpAppendAction)
	if err != nil {
		return nil, err
	}

	if description == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "action description is required", goerr.V(CaseIDKey, id))
	}
	if err := model.ValidateText("description", description); err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if err := requireAccess(p, c); err != nil {
		return nil, err
	}
	if limit := uc.repo.Limits().MaxActions; len(c.Actions) >= limit {
		return nil, goerr.Wrap(ErrCapacityExceeded, "action list is full",
			goerr.V(CaseIDKey, id),
			goerr.V(model.LimitKey, limit))
	}

	c.Actions = append(c.Actions, model.NewAction(description, p.Name, clock.Now(ctx)))
	if c.Status == types.CaseStatusAssigned {
		c.Status = types.CaseStatusInProgress
	}

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("action appended", "case_id", id, "by", p.Name)
	return updated, nil
}

// ExportCase hands the case over to another manager: the target is assigned,
// an export action is recorded and the case becomes Exported.
func (uc *CaseUseCase) ExportCase(ctx context.Context, id int64, target, reason string) (*model.Case, error) {
	p, err := principal(ctx, OpExportCase)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = DefaultExportReason
	}
	if err := model.ValidateText("reason", reason); err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if err := requireAccess(p, c); err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, goerr.Wrap(ErrCaseAlreadyClosed, "closed cases cannot be exported", goerr.V(CaseIDKey, id))
	}
	if err := uc.checkAssignable(ctx, c, target); err != nil {
		return nil, err
	}

	c.AssignedManagers = append(c.AssignedManagers, target)
	if len(c.Actions) < uc.repo.Limits().MaxActions {
		text := fmt.Sprintf("Case exported to %s. Reason: %s", target, reason)
		c.Actions = append(c.Actions, model.NewAction(text, p.Name, clock.Now(ctx)))
	}
	c.Status = types.CaseStatusExported

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("case exported", "case_id", id, "target", target, "by", p.Name)
	return updated, nil
}

// ExportTargets lists the active managers that are not yet assigned to the case
func (uc *CaseUseCase) ExportTargets(ctx context.Context, id int64) ([]*model.Manager, error) {
	p, err := principal(ctx, OpExportCase)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if err := requireAccess(p, c); err != nil {
		return nil, err
	}

	managers, err := uc.repo.Manager().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list managers")
	}

	targets := make([]*model.Manager, 0, len(managers))
	for _, m := range managers {
		if m.Active && !c.IsAssigned(m.Name) {
			targets = append(targets, m)
		}
	}
	return targets, nil
}

// CloseCase moves the case to the terminal Closed status
func (uc *CaseUseCase) CloseCase(ctx context.Context, id int64) (*model.Case, error) {
	p, err := principal(ctx, OpCloseCase)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if err := requireAccess(p, c); err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, goerr.Wrap(ErrCaseAlreadyClosed, "case is already closed", goerr.V(CaseIDKey, id))
	}

	c.Status = types.CaseStatusClosed
	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("case closed", "case_id", id, "by", p.Name)
	return updated, nil
}

func (uc *CaseUseCase) EditCase(ctx context.Context, id int64, edit CaseEdit) (*model.Case, error) {
	p, err := principal(ctx, OpEditCase)
	if err != nil {
		return nil, err
	}

	for field, value := range map[string]string{"title": edit.Title, "description": edit.Description, "source": edit.Source} {
		if err := model.ValidateText(field, value); err != nil {
			return nil, err
		}
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if c.Status.IsTerminal() {
		return nil, goerr.Wrap(ErrCaseAlreadyClosed, "closed cases cannot be edited", goerr.V(CaseIDKey, id))
	}

	if edit.Title != "" {
		c.Title = edit.Title
	}
	if edit.Description != "" {
		c.Description = edit.Description
	}
	if edit.Source != "" {
		c.Source = edit.Source
	}

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("case edited", "case_id", id, "by", p.Name)
	return updated, nil
}

func (uc *CaseUseCase) DeleteCase(ctx context.Context, id int64) error {
	p, err := principal(ctx, OpDeleteCase)
	if err != nil {
		return err
	}

	if err := uc.repo.Case().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("case deleted", "case_id", id, "by", p.Name)
	return nil
}
