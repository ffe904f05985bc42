package interfaces

import (
	"context"

	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

// CaseRepository defines the interface for Case data access. Cases are kept
// in creation order.
type CaseRepository interface {
	// Create stores a new case with the next id from the counter
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id int64) (*model.Case, error)

	// List retrieves all cases in creation order
	List(ctx context.Context) ([]*model.Case, error)

	// Update replaces an existing case. CreatedAt is preserved.
	Update(ctx context.Context, c *model.Case) (*model.Case, error)

	// Delete removes a case, keeping the relative order of the rest
	Delete(ctx context.Context, id int64) error

	// ListByManager retrieves the cases the named manager is assigned to
	ListByManager(ctx context.Context, name string) ([]*model.Case, error)
}
