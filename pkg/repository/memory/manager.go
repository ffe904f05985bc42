package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

type managerRepository struct {
	mu          sync.RWMutex
	managers    []*model.Manager
	maxManagers int
}

func newManagerRepository(maxManagers int) *managerRepository {
	return &managerRepository{maxManagers: maxManagers}
}

// indexOf returns the position of the named manager, or -1. Caller holds mu.
func (r *managerRepository) indexOf(name string) int {
	return slices.IndexFunc(r.managers, func(m *model.Manager) bool {
		return m.Name == name
	})
}

func (r *managerRepository) Create(ctx context.Context, m *model.Manager) (*model.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.managers) >= r.maxManagers {
		return nil, goerr.Wrap(model.ErrCapacityExceeded, "manager table is full",
			goerr.V(model.LimitKey, r.maxManagers))
	}
	if r.indexOf(m.Name) >= 0 {
		return nil, goerr.Wrap(model.ErrManagerExists, "manager already exists", goerr.V(model.ManagerKey, m.Name))
	}

	created := m.Copy()
	r.managers = append(r.managers, created)
	return created.Copy(), nil
}

func (r *managerRepository) Get(ctx context.Context, name string) (*model.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return nil, goerr.Wrap(model.ErrManagerNotFound, "manager not found", goerr.V(model.ManagerKey, name))
	}
	return r.managers[idx].Copy(), nil
}

func (r *managerRepository) List(ctx context.Context) ([]*model.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	managers := make([]*model.Manager, 0, len(r.managers))
	for _, m := range r.managers {
		managers = append(managers, m.Copy())
	}
	return managers, nil
}

func (r *managerRepository) Update(ctx context.Context, m *model.Manager) (*model.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(m.Name)
	if idx < 0 {
		return nil, goerr.Wrap(model.ErrManagerNotFound, "manager not found", goerr.V(model.ManagerKey, m.Name))
	}

	r.managers[idx] = m.Copy()
	return m.Copy(), nil
}

func (r *managerRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return goerr.Wrap(model.ErrManagerNotFound, "manager not found", goerr.V(model.ManagerKey, name))
	}

	r.managers = slices.Delete(r.managers, idx, idx+1)
	return nil
}

func (r *managerRepository) snapshot() []*model.Manager {
	r.mu.RLock()
	defer r.mu.RUnlock()

	managers := make([]*model.Manager, 0, len(r.managers))
	for _, m := range r.managers {
		managers = append(managers, m.Copy())
	}
	return managers
}

func (r *managerRepository) restore(managers []*model.Manager) error {
	if len(managers) > r.maxManagers {
		return goerr.Wrap(model.ErrCapacityExceeded, "too many managers to restore",
			goerr.V(model.LimitKey, r.maxManagers),
			goerr.V("count", len(managers)))
	}

	seen := make(map[string]struct{}, len(managers))
	restored := make([]*model.Manager, 0, len(managers))
	for _, m := range managers {
		if _, dup := seen[m.Name]; dup {
			return goerr.Wrap(model.ErrManagerExists, "duplicate manager in snapshot", goerr.V(model.ManagerKey, m.Name))
		}
		seen[m.Name] = struct{}{}
		restored = append(restored, m.Copy())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers = restored
	return nil
}
