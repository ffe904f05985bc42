package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

type ManagerUseCase struct {
	repo interfaces.Repository
}

func NewManagerUseCase(repo interfaces.Repository) *ManagerUseCase {
	return &ManagerUseCase{repo: repo}
}

// AddManager registers an active manager
func (uc *ManagerUseCase) AddManager(ctx context.Context, name, department, password string) (*model.Manager, error) {
	p, err := principal(ctx, OpAddManager)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "manager name is required")
	}
	if password == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "manager password is required", goerr.V(ManagerKey, name))
	}
	for field, value := range map[string]string{"name": name, "department": department, "password": password} {
		if err := model.ValidateText(field, value); err != nil {
			return nil, err
		}
	}

	created, err := uc.repo.Manager().Create(ctx, &model.Manager{
		Name:       name,
		Department: department,
		Password:   password,
		Active:     true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create manager", goerr.V(ManagerKey, name))
	}

	logging.From(ctx).Info("manager added", "manager", created, "by", p.Name)
	return created, nil
}

func (uc *ManagerUseCase) ListManagers(ctx context.Context) ([]*model.Manager, error) {
	if _, err := principal(ctx, OpListManagers); err != nil {
		return nil, err
	}

	managers, err := uc.repo.Manager().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list managers")
	}
	return managers, nil
}

// EditManager replaces the department. An empty department keeps the current one.
func (uc *ManagerUseCase) EditManager(ctx context.Context, name, department string) (*model.Manager, error) {
	p, err := principal(ctx, OpEditManager)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateText("department", department); err != nil {
		return nil, err
	}

	m, err := uc.repo.Manager().Get(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get manager")
	}
	if department != "" {
		m.Department = department
	}

	updated, err := uc.repo.Manager().Update(ctx, m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update manager", goerr.V(ManagerKey, name))
	}

	logging.From(ctx).Info("manager edited", "manager", name, "by", p.Name)
	return updated, nil
}

// ToggleManager flips the active flag and returns the updated manager
func (uc *ManagerUseCase) ToggleManager(ctx context.Context, name string) (*model.Manager, error) {
	p, err := principal(ctx, OpToggleManager)
	if err != nil {
		return nil, err
	}

	m, err := uc.repo.Manager().Get(ctx, name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get manager")
	}
	m.Active = !m.Active

	updated, err := uc.repo.Manager().Update(ctx, m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update manager", goerr.V(ManagerKey, name))
	}

	logging.From(ctx).Info("manager toggled", "manager", name, "active", updated.Active, "by", p.Name)
	return updated, nil
}

// DeleteManager removes a manager that no case references
func (uc *ManagerUseCase) DeleteManager(ctx context.Context, name string) error {
	p, err := principal(ctx, OpDeleteManager)
	if err != nil {
		return err
	}

	if _, err := uc.repo.Manager().Get(ctx, name); err != nil {
		return goerr.Wrap(err, "failed to get manager")
	}

	assigned, err := uc.repo.Case().ListByManager(ctx, name)
	if err != nil {
		return goerr.Wrap(err, "failed to list cases", goerr.V(ManagerKey, name))
	}
	if len(assigned) > 0 {
		return goerr.Wrap(ErrManagerInUse, "manager is still assigned",
			goerr.V(ManagerKey, name),
			goerr.V(CaseIDKey, assigned[0].ID))
	}

	if err := uc.repo.Manager().Delete(ctx, name); err != nil {
		return goerr.Wrap(err, "failed to delete manager", goerr.V(ManagerKey, name))
	}

	logging.From(ctx).Info("manager deleted", "manager", name, "by", p.Name)
	return nil
}
