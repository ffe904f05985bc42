package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory record store holding every case and manager
type Memory struct {
	limits  model.Limits
	cases   *caseRepository
	manager *managerRepository
}

var _ interfaces.Repository = &Memory{}

// Option configures a Memory store
type Option func(*Memory)

// WithLimits overrides the default capacity policy
func WithLimits(limits model.Limits) Option {
	return func(m *Memory) {
		m.limits = limits
	}
}

func New(opts ...Option) *Memory {
	m := &Memory{limits: model.DefaultLimits()}
	for _, opt := range opts {
		opt(m)
	}

	m.cases = newCaseRepository(m.limits.MaxCases)
	m.manager = newManagerRepository(m.limits.MaxManagers)
	return m
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) Manager() interfaces.ManagerRepository {
	return m.manager
}

func (m *Memory) Limits() model.Limits {
	return m.limits
}

func (m *Memory) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	cases, nextID := m.cases.snapshot()
	return &model.Snapshot{
		Managers:   m.manager.snapshot(),
		Cases:      cases,
		NextCaseID: nextID,
	}, nil
}

// Restore replaces the store contents. The case counter is raised above the
// largest restored id if needed. Nothing changes when validation fails.
func (m *Memory) Restore(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return goerr.New("snapshot is nil")
	}

	// Validate both tables before mutating either one.
	probeManagers := newManagerRepository(m.limits.MaxManagers)
	if err := probeManagers.restore(snap.Managers); err != nil {
		return err
	}
	probeCases := newCaseRepository(m.limits.MaxCases)
	if err := probeCases.restore(snap.Cases, snap.NextCaseID); err != nil {
		return err
	}

	if err := m.manager.restore(snap.Managers); err != nil {
		return err
	}
	return m.cases.restore(snap.Cases, snap.NextCaseID)
}
