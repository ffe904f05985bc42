package memory

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

type caseRepository struct {
	mu       sync.RWMutex
	cases    []*model.Case
	nextID   int64
	maxCases int
}

func newCaseRepository(maxCases int) *caseRepository {
	return &caseRepository{
		nextID:   model.FirstCaseID,
		maxCases: maxCases,
	}
}

// indexOf returns the position of the case with id, or -1. Caller holds mu.
func (r *caseRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.cases, func(c *model.Case) bool {
		return c.ID == id
	})
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.cases) >= r.maxCases {
		return nil, goerr.Wrap(model.ErrCapacityExceeded, "case table is full",
			goerr.V(model.LimitKey, r.maxCases))
	}

	if r.nextID == math.MaxInt64 {
		return nil, goerr.Wrap(model.ErrCapacityExceeded, "case ids are exhausted",
			goerr.V(model.CaseIDKey, r.nextID))
	}

	created := c.Copy()
	created.ID = r.nextID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	r.nextID++

	r.cases = append(r.cases, created)
	return created.Copy(), nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, goerr.Wrap(model.ErrCaseNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	return r.cases[idx].Copy(), nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.cases))
	for _, c := range r.cases {
		cases = append(cases, c.Copy())
	}
	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(c.ID)
	if idx < 0 {
		return nil, goerr.Wrap(model.ErrCaseNotFound, "case not found", goerr.V(model.CaseIDKey, c.ID))
	}

	updated := c.Copy()
	updated.CreatedAt = r.cases[idx].CreatedAt
	r.cases[idx] = updated
	return updated.Copy(), nil
}

func (r *caseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return goerr.Wrap(model.ErrCaseNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}

	r.cases = slices.Delete(r.cases, idx, idx+1)
	return nil
}

func (r *caseRepository) ListByManager(ctx context.Context, name string) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0)
	for _, c := range r.cases {
		if c.IsAssigned(name) {
			cases = append(cases, c.Copy())
		}
	}
	return cases, nil
}

func (r *caseRepository) snapshot() ([]*model.Case, int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.cases))
	for _, c := range r.cases {
		cases = append(cases, c.Copy())
	}
	return cases, r.nextID
}

func (r *caseRepository) restore(cases []*model.Case, nextID int64) error {
	if len(cases) > r.maxCases {
		return goerr.Wrap(model.ErrCapacityExceeded, "too many cases to restore",
			goerr.V(model.LimitKey, r.maxCases),
			goerr.V("count", len(cases)))
	}

	seen := make(map[int64]struct{}, len(cases))
	restored := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if _, dup := seen[c.ID]; dup {
			return goerr.Wrap(model.ErrDuplicateCaseID, "duplicate case in snapshot", goerr.V(model.CaseIDKey, c.ID))
		}
		seen[c.ID] = struct{}{}
		restored = append(restored, c.Copy())
		if c.ID >= nextID {
			nextID = model.CaseIDAfter(c.ID)
		}
	}
	if nextID < model.FirstCaseID {
		nextID = model.FirstCaseID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases = restored
	r.nextID = nextID
	return nil
}
